// Package models defines server-side data models persisted by the metadata store.
package models

import (
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
)

// FileType is the kind of a file node.
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// ParseFileType reports whether s names a known node type.
func ParseFileType(s string) (FileType, bool) {
	switch t := FileType(s); t {
	case TypeFolder, TypeFile, TypeImage:
		return t, true
	default:
		return "", false
	}
}

// HasContent reports whether nodes of this type carry uploaded bytes.
func (t FileType) HasContent() bool {
	return t == TypeFile || t == TypeImage
}

// FileNode is a single entry of a user's file hierarchy.
type FileNode struct {
	ID string
	// UserID is the owner. It is never changed after creation.
	UserID   string
	Name     string
	Type     FileType
	IsPublic bool
	// ParentID is common.RootParentID for top-level nodes.
	ParentID string
	// LocalPath is the blob location of the original bytes. Empty for folders.
	LocalPath string
	CreatedAt time.Time
}

// IsRoot reports whether the node sits at the top of the hierarchy.
func (f *FileNode) IsRoot() bool {
	return f.ParentID == common.RootParentID
}

// Package access decides who may see or change a file node.
package access

import "github.com/dmitrijs2005/filesmanager/internal/server/models"

// CanView reports whether callerID may read node metadata and content. An
// empty callerID is an anonymous caller and only sees public nodes.
func CanView(node *models.FileNode, callerID string) bool {
	return node.IsPublic || IsOwner(node, callerID)
}

// IsOwner reports whether callerID owns node.
func IsOwner(node *models.FileNode, callerID string) bool {
	return callerID != "" && callerID == node.UserID
}

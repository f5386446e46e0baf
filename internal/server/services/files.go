package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/access"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// Size selects the original bytes of a file or one of its thumbnails.
type Size string

const (
	SizeOriginal Size = "original"
	Size500      Size = "500"
	Size250      Size = "250"
	Size100      Size = "100"
)

// ParseSize validates a size query value. An empty value means the original.
func ParseSize(s string) (Size, error) {
	switch sz := Size(s); sz {
	case "":
		return SizeOriginal, nil
	case SizeOriginal, Size500, Size250, Size100:
		return sz, nil
	default:
		return "", fmt.Errorf("%w: invalid size", common.ErrInvalidArgument)
	}
}

// UploadInput is an upload request. Data is base64 and is ignored for folders.
type UploadInput struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}

// Content is the payload returned by ReadBytes.
type Content struct {
	Data        []byte
	ContentType string
}

// FileService manages the file tree of every user.
type FileService struct {
	repomanager    repomanager.RepositoryManager
	blobs          blobstore.Store
	producer       queue.Producer
	logger         logging.Logger
	maxUploadBytes int64
}

func NewFileService(m repomanager.RepositoryManager, blobs blobstore.Store, p queue.Producer,
	maxUploadBytes int64, logger logging.Logger) *FileService {
	return &FileService{
		repomanager:    m,
		blobs:          blobs,
		producer:       p,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload dispatches to CreateFolder or UploadFile by the declared type.
func (s *FileService) Upload(ctx context.Context, ownerID string, in UploadInput) (*models.FileNode, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrInvalidArgument)
	}
	if in.Type == string(models.TypeFolder) {
		return s.CreateFolder(ctx, ownerID, in.Name, in.ParentID, in.IsPublic)
	}
	return s.UploadFile(ctx, ownerID, in)
}

// CreateFolder persists a folder node under parentID.
func (s *FileService) CreateFolder(ctx context.Context, ownerID, name, parentID string, isPublic bool) (*models.FileNode, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrInvalidArgument)
	}
	parentID, err := s.checkParent(ctx, ownerID, parentID)
	if err != nil {
		return nil, err
	}

	node, err := s.repomanager.Files().Create(ctx, &models.FileNode{
		UserID:   ownerID,
		Name:     name,
		Type:     models.TypeFolder,
		IsPublic: isPublic,
		ParentID: parentID,
	})
	if err != nil {
		s.logger.Error(ctx, "create folder failed", "error", err)
		return nil, common.ErrInternal
	}
	return node, nil
}

// UploadFile stores the decoded payload, persists a file or image node
// pointing at it and queues the node for thumbnail processing.
func (s *FileService) UploadFile(ctx context.Context, ownerID string, in UploadInput) (*models.FileNode, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrInvalidArgument)
	}
	if in.Type == "" {
		return nil, fmt.Errorf("%w: missing type", common.ErrInvalidArgument)
	}
	typ, ok := models.ParseFileType(in.Type)
	if !ok || !typ.HasContent() {
		return nil, fmt.Errorf("%w: missing type", common.ErrInvalidArgument)
	}
	if in.Data == "" {
		return nil, fmt.Errorf("%w: missing data", common.ErrInvalidArgument)
	}
	if s.maxUploadBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(in.Data))) > s.maxUploadBytes+2 {
		return nil, fmt.Errorf("%w: data too large", common.ErrInvalidArgument)
	}
	data, err := base64.StdEncoding.DecodeString(in.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid data", common.ErrInvalidArgument)
	}
	if s.maxUploadBytes > 0 && int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: data too large", common.ErrInvalidArgument)
	}

	parentID, err := s.checkParent(ctx, ownerID, in.ParentID)
	if err != nil {
		return nil, err
	}

	location := s.blobs.Location(uuid.NewString())
	if err := s.blobs.Write(ctx, location, data); err != nil {
		s.logger.Error(ctx, "upload: blob write failed", "error", err)
		return nil, common.ErrInternal
	}

	node, err := s.repomanager.Files().Create(ctx, &models.FileNode{
		UserID:    ownerID,
		Name:      in.Name,
		Type:      typ,
		IsPublic:  in.IsPublic,
		ParentID:  parentID,
		LocalPath: location,
	})
	if err != nil {
		s.logger.Error(ctx, "upload: create node failed", "error", err)
		if rmErr := s.blobs.Remove(ctx, location); rmErr != nil {
			s.logger.Warn(ctx, "upload: orphan blob left behind", "location", location, "error", rmErr)
		}
		return nil, common.ErrInternal
	}

	msg := queue.FileMessage{UserID: ownerID, FileID: node.ID}
	if err := s.producer.Publish(ctx, common.TopicFiles, msg); err != nil {
		s.logger.Warn(ctx, "upload: file not queued for processing", "file_id", node.ID, "error", err)
	}

	return node, nil
}

// GetNode returns a node the caller may view. Nodes hidden from the caller
// are reported as ErrNotFound.
func (s *FileService) GetNode(ctx context.Context, callerID, nodeID string) (*models.FileNode, error) {
	node, err := s.load(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(node, callerID) {
		return nil, common.ErrNotFound
	}
	return node, nil
}

// ListNodes returns one page of the caller's children of parentID.
func (s *FileService) ListNodes(ctx context.Context, callerID, parentID string, page int) ([]*models.FileNode, error) {
	if parentID == "" {
		parentID = common.RootParentID
	}
	if page < 0 {
		page = 0
	}

	nodes, err := s.repomanager.Files().ListByParent(ctx, callerID, parentID, common.PageSize, page*common.PageSize)
	if err != nil {
		s.logger.Error(ctx, "list nodes failed", "error", err)
		return nil, common.ErrInternal
	}
	return nodes, nil
}

// SetVisibility publishes or unpublishes a node owned by the caller and
// returns it as stored afterwards.
func (s *FileService) SetVisibility(ctx context.Context, callerID, nodeID string, isPublic bool) (*models.FileNode, error) {
	node, err := s.load(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner(node, callerID) {
		return nil, common.ErrNotFound
	}

	if err := s.repomanager.Files().SetPublic(ctx, nodeID, isPublic); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "set visibility failed", "error", err)
		return nil, common.ErrInternal
	}

	return s.load(ctx, nodeID)
}

// ReadBytes returns the content of a file node, or one of its thumbnails.
// callerID is empty for anonymous callers.
func (s *FileService) ReadBytes(ctx context.Context, callerID, nodeID string, size Size) (*Content, error) {
	node, err := s.load(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(node, callerID) {
		return nil, common.ErrNotFound
	}
	if !node.Type.HasContent() {
		return nil, fmt.Errorf("%w: a folder doesn't have content", common.ErrInvalidOperation)
	}

	location := node.LocalPath
	if size != SizeOriginal && size != "" {
		location = location + "_" + string(size)
	}

	data, err := s.blobs.Read(ctx, location)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "read bytes failed", "file_id", nodeID, "error", err)
		}
		return nil, common.ErrNotFound
	}

	return &Content{Data: data, ContentType: contentType(node.Name)}, nil
}

func (s *FileService) load(ctx context.Context, nodeID string) (*models.FileNode, error) {
	node, err := s.repomanager.Files().GetByID(ctx, nodeID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "node lookup failed", "error", err)
		return nil, common.ErrInternal
	}
	return node, nil
}

// checkParent normalizes parentID and verifies it names one of the owner's
// folders. A folder owned by someone else counts as not found.
func (s *FileService) checkParent(ctx context.Context, ownerID, parentID string) (string, error) {
	if parentID == "" || parentID == common.RootParentID {
		return common.RootParentID, nil
	}

	parent, err := s.repomanager.Files().GetByIDAndUser(ctx, parentID, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidParent
		}
		s.logger.Error(ctx, "parent lookup failed", "error", err)
		return "", common.ErrInternal
	}
	if parent.Type != models.TypeFolder {
		return "", common.ErrParentNotFolder
	}
	return parentID, nil
}

func contentType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return defaultContentType
}

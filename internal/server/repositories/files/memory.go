package files

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps nodes in insertion order in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.FileNode
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.FileNode)}
}

func (r *MemoryRepository) Create(_ context.Context, node *models.FileNode) (*models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node.ID = uuid.NewString()
	node.CreatedAt = time.Now().UTC()
	r.byID[node.ID] = *node
	r.order = append(r.order, node.ID)
	return node, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.FileNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &n, nil
}

func (r *MemoryRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.FileNode, error) {
	n, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return n, nil
}

func (r *MemoryRepository) ListByParent(_ context.Context, userID, parentID string, limit, offset int) ([]*models.FileNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.FileNode, 0)
	skipped := 0
	for _, id := range r.order {
		if len(result) >= limit {
			break
		}
		n := r.byID[id]
		if n.UserID != userID || n.ParentID != parentID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		result = append(result, &n)
	}
	return result, nil
}

func (r *MemoryRepository) SetPublic(_ context.Context, id string, isPublic bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	n.IsPublic = isPublic
	r.byID[id] = n
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type published struct {
	topic   string
	payload any
}

type fakeProducer struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakeProducer) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{topic: topic, payload: payload})
	return nil
}

// recordingStore wraps a session store and remembers the last TTL written.
type recordingStore struct {
	sessions.Store
	lastTTL time.Duration
	setErr  error
	getErr  error
}

func (r *recordingStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.lastTTL = ttl
	return r.Store.Set(ctx, key, value, ttl)
}

func (r *recordingStore) Get(ctx context.Context, key string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.Store.Get(ctx, key)
}

// fakeRepoManager lets tests swap individual repositories.
type fakeRepoManager struct {
	u       users.Repository
	f       files.Repository
	pingErr error
}

func (m *fakeRepoManager) Users() users.Repository             { return m.u }
func (m *fakeRepoManager) Files() files.Repository             { return m.f }
func (m *fakeRepoManager) Ping(context.Context) error          { return m.pingErr }
func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Close() error                        { return nil }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// failingFiles breaks selected file repository calls.
type failingFiles struct {
	files.Repository
	createErr error
	getErr    error
	listErr   error
	setErr    error
}

func (f *failingFiles) Create(ctx context.Context, n *models.FileNode) (*models.FileNode, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.Repository.Create(ctx, n)
}

func (f *failingFiles) GetByID(ctx context.Context, id string) (*models.FileNode, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.GetByID(ctx, id)
}

func (f *failingFiles) ListByParent(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.FileNode, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Repository.ListByParent(ctx, userID, parentID, limit, offset)
}

func (f *failingFiles) SetPublic(ctx context.Context, id string, isPublic bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.SetPublic(ctx, id, isPublic)
}

var errBoom = errors.New("boom")

// --- fixture ---

type fixture struct {
	repos    *fakeRepoManager
	fs       afero.Fs
	blobs    *blobstore.LocalStore
	sessions *recordingStore
	producer *fakeProducer
	hasher   auth.Hasher

	auth  *AuthService
	users *UserService
	files *FileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	blobs, err := blobstore.NewLocalStore(fs, "/tmp/files_manager")
	require.NoError(t, err)

	fx := &fixture{
		repos:    &fakeRepoManager{u: users.NewMemoryRepository(), f: files.NewMemoryRepository()},
		fs:       fs,
		blobs:    blobs,
		sessions: &recordingStore{Store: sessions.NewMemoryStore()},
		producer: &fakeProducer{},
		hasher:   auth.SHA1Hasher{},
	}
	fx.auth = NewAuthService(fx.repos.u, fx.sessions, fx.hasher, logging.Nop{})
	fx.users = NewUserService(fx.repos, fx.sessions, fx.hasher, fx.producer, logging.Nop{})
	fx.files = NewFileService(fx.repos, fx.blobs, fx.producer, 1<<20, logging.Nop{})
	return fx
}

// register creates a user and returns its id.
func (fx *fixture) register(t *testing.T, email, password string) string {
	t.Helper()
	u, err := fx.users.Register(context.Background(), email, password)
	require.NoError(t, err)
	return u.ID
}

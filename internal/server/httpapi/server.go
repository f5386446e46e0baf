// Package httpapi exposes the file manager over HTTP using gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves and manages sessions.
type Authenticator interface {
	Login(ctx context.Context, authorization string) (string, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (string, error)
}

// Accounts covers registration and the health endpoints.
type Accounts interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Stats(ctx context.Context) (*services.Stats, error)
	Status(ctx context.Context) services.Status
}

// FileTree is the file node API.
type FileTree interface {
	Upload(ctx context.Context, ownerID string, in services.UploadInput) (*models.FileNode, error)
	GetNode(ctx context.Context, callerID, nodeID string) (*models.FileNode, error)
	ListNodes(ctx context.Context, callerID, parentID string, page int) ([]*models.FileNode, error)
	SetVisibility(ctx context.Context, callerID, nodeID string, isPublic bool) (*models.FileNode, error)
	ReadBytes(ctx context.Context, callerID, nodeID string, size services.Size) (*services.Content, error)
}

// Options tunes the transport.
type Options struct {
	// MaxUploadBytes bounds the decoded upload payload. The request body
	// limit is derived from it.
	MaxUploadBytes int64
	CORSOrigins    []string
}

type Server struct {
	engine  *gin.Engine
	auth    Authenticator
	users   Accounts
	files   FileTree
	logger  logging.Logger
	maxBody int64
}

func NewServer(opts Options, a Authenticator, u Accounts, f FileTree, logger logging.Logger) *Server {
	s := &Server{
		engine: gin.New(),
		auth:   a,
		users:  u,
		files:  f,
		logger: logger,
	}
	if opts.MaxUploadBytes > 0 {
		// base64 inflates by 4/3; leave room for the JSON envelope.
		s.maxBody = opts.MaxUploadBytes*4/3 + 1024
	}

	s.engine.Use(gin.Recovery(), accessLog(logger))
	if len(opts.CORSOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut},
			AllowHeaders:  []string{"Authorization", "Content-Type", common.TokenHeaderName},
			ExposeHeaders: []string{"Content-Type"},
			MaxAge:        12 * time.Hour,
		}))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/status", s.getStatus)
	r.GET("/stats", s.getStats)
	r.POST("/users", s.postUser)
	r.GET("/connect", s.getConnect)

	authed := r.Group("/", s.requireSession)
	authed.GET("/disconnect", s.getDisconnect)
	authed.GET("/users/me", s.getMe)
	authed.POST("/files", s.postUpload)
	authed.GET("/files", s.getIndex)
	authed.GET("/files/:id", s.getShow)
	authed.PUT("/files/:id/publish", s.putPublish)
	authed.PUT("/files/:id/unpublish", s.putUnpublish)

	r.GET("/files/:id/data", s.optionalSession, s.getData)
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

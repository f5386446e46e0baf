package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
)

// Stats holds the object counts reported by the stats endpoint.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Status reports backend liveness. Redis names the session store whatever
// its backend is.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// UserService handles registration and account queries.
type UserService struct {
	repomanager repomanager.RepositoryManager
	sessions    sessions.Store
	hasher      auth.Hasher
	producer    queue.Producer
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, s sessions.Store, h auth.Hasher, p queue.Producer, logger logging.Logger) *UserService {
	return &UserService{repomanager: m, sessions: s, hasher: h, producer: p, logger: logger}
}

// Register creates an account. The email must not be taken yet.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: missing email", common.ErrInvalidArgument)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: missing password", common.ErrInvalidArgument)
	}

	repo := s.repomanager.Users()

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "register: user lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "register: hashing failed", "error", err)
		return nil, common.ErrInternal
	}

	u, err := repo.Create(ctx, &models.User{Email: email, PasswordDigest: digest})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		s.logger.Error(ctx, "register: create failed", "error", err)
		return nil, common.ErrInternal
	}

	if err := s.producer.Publish(ctx, common.TopicUsers, queue.UserMessage{UserID: u.ID}); err != nil {
		s.logger.Warn(ctx, "register: welcome job not queued", "user_id", u.ID, "error", err)
	}

	return u, nil
}

// Me returns the account behind a resolved session.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "me: user lookup failed", "error", err)
		return nil, common.ErrInternal
	}
	return u, nil
}

func (s *UserService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.repomanager.Users().Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "stats: count users failed", "error", err)
		return nil, common.ErrInternal
	}
	files, err := s.repomanager.Files().Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "stats: count files failed", "error", err)
		return nil, common.ErrInternal
	}
	return &Stats{Users: users, Files: files}, nil
}

func (s *UserService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.sessions.Ping(ctx) == nil,
		DB:    s.repomanager.Ping(ctx) == nil,
	}
}

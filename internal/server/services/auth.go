// Package services contains server-side business logic: authentication,
// user accounts and the file tree.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
	"github.com/google/uuid"
)

// AuthService issues, resolves and revokes session tokens.
type AuthService struct {
	users    users.Repository
	sessions sessions.Store
	hasher   auth.Hasher
	logger   logging.Logger
	ttl      time.Duration
	newToken func() string
}

func NewAuthService(u users.Repository, s sessions.Store, h auth.Hasher, logger logging.Logger) *AuthService {
	return &AuthService{
		users:    u,
		sessions: s,
		hasher:   h,
		logger:   logger,
		ttl:      common.SessionTTL,
		newToken: uuid.NewString,
	}
}

// WithSessionTTL overrides the lifetime of sessions opened by Login.
func (s *AuthService) WithSessionTTL(ttl time.Duration) *AuthService {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// Login verifies an Authorization header carrying Basic credentials and opens
// a session. Every credential failure yields the same ErrUnauthenticated.
func (s *AuthService) Login(ctx context.Context, authorization string) (string, error) {
	email, password, ok := auth.ParseBasic(authorization)
	if !ok {
		return "", common.ErrUnauthenticated
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "login: user lookup failed", "error", err)
		return "", common.ErrInternal
	}

	if err := s.hasher.Compare(user.PasswordDigest, password); err != nil {
		return "", common.ErrUnauthenticated
	}

	token := s.newToken()
	if err := s.sessions.Set(ctx, common.SessionKey(token), user.ID, s.ttl); err != nil {
		s.logger.Error(ctx, "login: session write failed", "error", err)
		return "", common.ErrInternal
	}

	return token, nil
}

// Logout deletes the session behind token. A token that was never issued,
// has expired, or was already logged out yields ErrUnauthenticated.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.ResolveSession(ctx, token); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, common.SessionKey(token)); err != nil {
		s.logger.Error(ctx, "logout: session delete failed", "error", err)
		return common.ErrInternal
	}
	return nil
}

// ResolveSession returns the user id bound to token. It never extends the
// session lifetime.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, common.SessionKey(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUnauthenticated
		}
		s.logger.Error(ctx, "session lookup failed", "error", err)
		return "", common.ErrInternal
	}
	return userID, nil
}

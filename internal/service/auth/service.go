package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	authn "github.com/jwalitptl/hospital-admin/internal/auth"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/session"
)

const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgNotAuthorized      = "Not authorized"
)

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	users    repository.UserRepository
	sessions session.Store
	tokens   *authn.TokenManager
	hasher   security.PasswordHasher
}

func NewService(users repository.UserRepository, sessions session.Store, tokens *authn.TokenManager, hasher security.PasswordHasher) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("stored password hash is unusable")
		}
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}

	sess := session.New(user.ID, user.Username, user.Role, s.tokens.TTL())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to save session: %w", err))
	}

	token, expiresAt, err := s.tokens.Issue(&authn.Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user logged in")
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a token to the principal of a live session.
func (s *Service) Authenticate(ctx context.Context, token string) (*authn.Principal, error) {
	claimed, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthorized(MsgNotAuthorized)
	}

	sess, err := s.sessions.Get(ctx, claimed.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, apperrors.Unauthorized(MsgNotAuthorized)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to load session: %w", err))
	}
	if sess.UserID != claimed.UserID {
		return nil, apperrors.Unauthorized(MsgNotAuthorized)
	}

	// The session, not the token, is authoritative for the role.
	return &authn.Principal{
		UserID:    sess.UserID,
		Username:  sess.Username,
		Role:      sess.Role,
		SessionID: sess.ID,
	}, nil
}

// Logout destroys the session behind token. Invalid or already revoked
// tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claimed, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claimed.SessionID); err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to delete session: %w", err))
	}
	return nil
}

// Me returns the stored user behind the request's principal.
func (s *Service) Me(ctx context.Context) (*model.User, error) {
	p, ok := authn.FromContext(ctx)
	if !ok {
		return nil, apperrors.Unauthorized(MsgNotAuthorized)
	}

	user, err := s.users.Get(ctx, p.UserID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.Unauthorized(MsgNotAuthorized)
	}
	return user, err
}

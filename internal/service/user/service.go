package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/auth"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/security"
)

const MsgUserExists = "User already exists"

const (
	minUsernameLen = 3
	maxUsernameLen = 50
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}

	user := &model.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidation(MsgUserExists, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username, err := normalizeUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if username != user.Username {
			if err := s.ensureUsernameFree(ctx, username, user.ID); err != nil {
				return nil, err
			}
			user.Username = username
		}
	}
	if req.Password != nil {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidation(MsgUserExists, err)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user account. Admins cannot delete the account they are
// signed in with.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if p, ok := auth.FromContext(ctx); ok && p.UserID == id {
		return apperrors.NewValidation("You cannot delete your own account", nil)
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !removed {
		return apperrors.NewNotFound("User", nil)
	}
	return nil
}

// EnsureAdmin creates the admin account unless the username is already taken.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Create(ctx, model.CreateUserRequest{Username: username, Password: password, Role: model.RoleAdmin})
	if appErr, ok := apperrors.As(err); ok && appErr.Message == MsgUserExists {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// normalizeUsername trims raw and checks the length of what will be stored.
func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	switch n := utf8.RuneCountInString(username); {
	case n < minUsernameLen:
		return "", apperrors.NewValidation(fmt.Sprintf("username must be at least %d", minUsernameLen), nil)
	case n > maxUsernameLen:
		return "", apperrors.NewValidation(fmt.Sprintf("username must be at most %d", maxUsernameLen), nil)
	}
	return username, nil
}

func (s *Service) ensureUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	switch {
	case apperrors.IsNotFound(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up user: %w", err)
	case existing.ID != self:
		return apperrors.NewValidation(MsgUserExists, nil)
	}
	return nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case errors.Is(err, security.ErrPasswordTooShort), errors.Is(err, security.ErrPasswordTooLong):
		return "", apperrors.NewValidation(err.Error(), nil)
	case err != nil:
		return "", apperrors.NewInternal(err)
	}
	return hash, nil
}

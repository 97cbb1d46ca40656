package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authn "github.com/jwalitptl/hospital-admin/internal/auth"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/mocks"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/session"
)

const testSecret = "test-secret-test-secret-test-secret"

func setupService(t *testing.T) (*Service, *mocks.UserRepository, *model.User) {
	t.Helper()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	user := &model.User{Base: model.Base{ID: uuid.New()}, Username: "admin", PasswordHash: hash, Role: model.RoleAdmin}
	repo := &mocks.UserRepository{}
	repo.On("GetByUsername", context.Background(), "admin").Return(user, nil)
	repo.On("GetByUsername", context.Background(), "ghost").Return(nil, apperrors.NewNotFound("User", nil))

	svc := NewService(repo, session.NewMemoryStore(time.Minute), authn.NewTokenManager(testSecret, time.Hour), hasher)
	return svc, repo, user
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, _, user := setupService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	p, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.True(t, p.IsAdmin())

	require.NoError(t, svc.Logout(ctx, result.Token))

	_, err = svc.Authenticate(ctx, result.Token)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized), "revoked session must not authenticate")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := setupService(t)

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong-password"},
		{"ghost", "correct-password"},
	} {
		_, err := svc.Login(context.Background(), tc.username, tc.password)
		require.Error(t, err)
		assert.Equal(t, 401, apperrors.HTTPStatus(err))
		assert.Equal(t, MsgInvalidCredentials, err.Error())
	}
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	svc, _, _ := setupService(t)

	other := authn.NewTokenManager("some-other-secret-some-other-secret", time.Hour)
	token, _, err := other.Issue(&authn.Principal{UserID: uuid.New(), SessionID: uuid.NewString()})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.Equal(t, MsgNotAuthorized, err.Error())

	// Valid signature but no session behind it.
	orphan, _, err := authn.NewTokenManager(testSecret, time.Hour).Issue(&authn.Principal{UserID: uuid.New(), SessionID: uuid.NewString()})
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), orphan)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestMe(t *testing.T) {
	svc, repo, user := setupService(t)

	_, err := svc.Me(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	ctx := authn.WithPrincipal(context.Background(), &authn.Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
	repo.On("Get", ctx, user.ID).Return(user, nil)

	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
}

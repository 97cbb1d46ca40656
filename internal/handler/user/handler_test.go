package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-admin/internal/auth"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/mocks"
	usersvc "github.com/jwalitptl/hospital-admin/internal/service/user"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.RegisterGin()
}

// signedIn attaches p the way the auth middleware does.
func signedIn(p *auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

func setup(admin gin.HandlerFunc) (*gin.Engine, *mocks.UserRepository) {
	repo := &mocks.UserRepository{}
	r := gin.New()
	svc := usersvc.NewService(repo, security.NewBcryptHasher(bcrypt.MinCost))
	NewHandler(svc).RegisterRoutes(r.Group("/api"), admin)
	return r, repo
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, httputil.Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp httputil.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateUserDuplicate(t *testing.T) {
	r, repo := setup(func(c *gin.Context) { c.Next() })
	repo.On("GetByUsername", mock.Anything, "nurse").
		Return(&model.User{Base: model.Base{ID: uuid.New()}, Username: "nurse"}, nil)

	w, resp := do(r, http.MethodPost, "/api/users", `{"username":"nurse","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, usersvc.MsgUserExists, resp.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserHidesHash(t *testing.T) {
	r, repo := setup(func(c *gin.Context) { c.Next() })
	repo.On("GetByUsername", mock.Anything, "nurse").Return(nil, apperrors.NewNotFound("User", nil))
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	w, _ := do(r, http.MethodPost, "/api/users", `{"username":"nurse","password":"password123","role":"staff"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateUserInvalidRole(t *testing.T) {
	r, _ := setup(func(c *gin.Context) { c.Next() })
	w, resp := do(r, http.MethodPost, "/api/users", `{"username":"nurse","password":"password123","role":"root"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "role must be one of [admin staff]", resp.Message)
}

func TestDeleteOwnAccount(t *testing.T) {
	self := &auth.Principal{UserID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
	r, repo := setup(signedIn(self))

	w, resp := do(r, http.MethodDelete, "/api/users/"+self.UserID.String(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot delete your own account", resp.Message)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

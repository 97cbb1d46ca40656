package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/middleware"
	"github.com/jwalitptl/hospital-admin/internal/model"
	authsvc "github.com/jwalitptl/hospital-admin/internal/service/auth"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
)

type Service interface {
	Login(ctx context.Context, username, password string) (*authsvc.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context) (*model.User, error)
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	service Service
	cookie  CookieConfig
	now     func() time.Time
}

func NewHandler(service Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie, now: time.Now}
}

type loginResponse struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// RegisterRoutes mounts login and logout publicly and me behind protect.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, protect gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", protect, h.Me)
	}
}

// Login sets the session cookie and also returns the token for clients that
// prefer an Authorization header.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	maxAge := int(result.ExpiresAt.Sub(h.now()).Seconds())
	h.setCookie(c, result.Token, maxAge)
	httputil.RespondWithSuccess(c, loginResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if token := middleware.Token(c, h.cookie.Name); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			httputil.RespondWithError(c, err)
			return
		}
	}

	h.setCookie(c, "", -1)
	httputil.RespondWithMessage(c, "Logged out successfully")
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

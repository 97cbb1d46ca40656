package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-admin/internal/auth"
	authsvc "github.com/jwalitptl/hospital-admin/internal/service/auth"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
)

const MsgAdminRequired = "Admin access required"

// Authenticator resolves a session token to the caller behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	cookieName    string
}

func NewAuthMiddleware(authenticator Authenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
	}
}

// Token returns the session token carried by the request, preferring the
// cookie over an Authorization: Bearer header.
func Token(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Authenticate rejects requests without a live session and attaches the
// principal to the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := Token(c, m.cookieName)
		if token == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized(authsvc.MsgNotAuthorized))
			return
		}

		principal, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
		c.Set("user_id", principal.UserID.String())
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := auth.FromContext(c.Request.Context())
		if !principal.IsAdmin() {
			httputil.RespondWithError(c, apperrors.Forbidden(MsgAdminRequired))
			return
		}
		c.Next()
	}
}

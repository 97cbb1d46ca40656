package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/middleware"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

// Public is implemented by the health and metrics handlers, which mount
// outside /api without a session.
type Public interface {
	RegisterRoutes(r gin.IRouter)
}

type Handlers struct {
	// Auth receives the session middleware instead of the admin gate.
	Auth      handler.Routes
	Resources []handler.Routes
	Public    []Public
}

type RouterConfig struct {
	Production   bool
	RateLimit    rate.Limit
	RateBurst    int
	CORSOrigins  []string
	Timeout      time.Duration
	MaxBodyBytes int64
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config RouterConfig) *Router {
	if config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(config.Production)),
		middleware.CORS(middleware.DefaultCORSConfig(config.CORSOrigins)),
		rateLimiter.RateLimit(),
		middleware.SizeLimit(config.MaxBodyBytes),
		middleware.Timeout(config.Timeout),
	)

	engine.NoRoute(func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NewNotFound("Route", nil))
	})
	engine.NoMethod(func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NewNotFound("Route", nil))
	})

	return &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
	}
}

// Setup mounts every route. Everything under /api except login and logout
// requires a session; handlers gate admin-only routes themselves.
func (r *Router) Setup() {
	for _, h := range r.handlers.Public {
		h.RegisterRoutes(r.engine)
	}

	api := r.engine.Group("/api")
	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(api, r.auth.Authenticate())
	}

	protected := api.Group("", r.auth.Authenticate())
	admin := r.auth.RequireAdmin()
	for _, h := range r.handlers.Resources {
		h.RegisterRoutes(protected, admin)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-admin/internal/auth"
	"github.com/jwalitptl/hospital-admin/internal/config"
	"github.com/jwalitptl/hospital-admin/internal/handler"
	appointmentHandler "github.com/jwalitptl/hospital-admin/internal/handler/appointment"
	attendanceHandler "github.com/jwalitptl/hospital-admin/internal/handler/attendance"
	authHandler "github.com/jwalitptl/hospital-admin/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/hospital-admin/internal/handler/dashboard"
	equipmentHandler "github.com/jwalitptl/hospital-admin/internal/handler/equipment"
	healthHandler "github.com/jwalitptl/hospital-admin/internal/handler/health"
	patientHandler "github.com/jwalitptl/hospital-admin/internal/handler/patient"
	metricsHandler "github.com/jwalitptl/hospital-admin/internal/handler/prometheus"
	staffHandler "github.com/jwalitptl/hospital-admin/internal/handler/staff"
	userHandler "github.com/jwalitptl/hospital-admin/internal/handler/user"
	"github.com/jwalitptl/hospital-admin/internal/middleware"
	"github.com/jwalitptl/hospital-admin/internal/repository/postgres"
	"github.com/jwalitptl/hospital-admin/internal/router"
	"github.com/jwalitptl/hospital-admin/internal/scheduling"
	authService "github.com/jwalitptl/hospital-admin/internal/service/auth"
	dashboardService "github.com/jwalitptl/hospital-admin/internal/service/dashboard"
	equipmentService "github.com/jwalitptl/hospital-admin/internal/service/equipment"
	patientService "github.com/jwalitptl/hospital-admin/internal/service/patient"
	staffService "github.com/jwalitptl/hospital-admin/internal/service/staff"
	userService "github.com/jwalitptl/hospital-admin/internal/service/user"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/session"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobal(log)

	// Validate already resolved the zone; "today" follows it from here on.
	if loc, err := cfg.Location(); err == nil {
		time.Local = loc
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatal(err, "failed to migrate database")
		}
	}

	m := metrics.New("hospital", prometheus.DefaultRegisterer)

	sessions, closeSessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal(err, "failed to initialize session store")
	}
	defer closeSessions()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	equipmentRepo := postgres.NewEquipmentRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	// Services
	hasher := security.NewBcryptHasher(0)
	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	schedulingSvc := scheduling.NewService(postgres.NewStore(db), m)
	staffSvc := staffService.NewService(staffRepo)
	patientSvc := patientService.NewService(patientRepo)
	equipmentSvc := equipmentService.NewService(equipmentRepo)
	userSvc := userService.NewService(userRepo, hasher)
	authSvc := authService.NewService(userRepo, session.Instrument(sessions, m.SessionOperations), tokens, hasher)
	dashboardSvc := dashboardService.NewService(dashboardRepo, cfg.Dashboard.CacheTTL, m)

	validator.RegisterGin()
	authMiddleware := middleware.NewAuthMiddleware(authSvc, cfg.Session.CookieName)

	r := router.NewRouter(authMiddleware, router.Handlers{
		Auth: authHandler.NewHandler(authSvc, authHandler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		}),
		Resources: []handler.Routes{
			staffHandler.NewHandler(staffSvc),
			patientHandler.NewHandler(patientSvc),
			equipmentHandler.NewHandler(equipmentSvc),
			appointmentHandler.NewHandler(schedulingSvc),
			attendanceHandler.NewHandler(schedulingSvc),
			userHandler.NewHandler(userSvc),
			dashboardHandler.NewHandler(dashboardSvc),
		},
		Public: []router.Public{
			healthHandler.NewHandler(db),
			metricsHandler.New(prometheus.DefaultGatherer),
		},
	}, m, router.RouterConfig{
		Production:   cfg.IsProduction(),
		RateLimit:    rate.Limit(cfg.RateLimit.RPS),
		RateBurst:    cfg.RateLimit.Burst,
		CORSOrigins:  cfg.CORS.AllowOrigins,
		Timeout:      time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	r.Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", "port", cfg.Server.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}

// newSessionStore builds the configured backend. The returned func releases
// the redis connection when one was opened.
func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend != "redis" {
		return session.NewMemoryStore(time.Minute), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := session.NewRedisClient(ctx, redisConfig(cfg.Redis))
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(client), func() { client.Close() }, nil
}

func redisConfig(c config.RedisConfig) session.Config {
	return session.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

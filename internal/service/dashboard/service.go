package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

const (
	RecentAppointmentsLimit = 5
	statsKey                = "stats"
)

// Service computes the dashboard snapshot and caches it for a short TTL. A
// non-positive TTL disables caching.
type Service struct {
	repo    repository.DashboardRepository
	ttl     time.Duration
	cache   *cache.Cache
	metrics *metrics.Metrics
	today   func() model.Date
}

func NewService(repo repository.DashboardRepository, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		ttl:     ttl,
		cache:   cache.New(ttl, time.Minute),
		metrics: m,
		today:   model.Today,
	}
}

func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if s.ttl <= 0 {
		return s.compute(ctx)
	}
	if cached, ok := s.cache.Get(statsKey); ok {
		s.metrics.DashboardCache.WithLabelValues("hit").Inc()
		return cached.(*model.DashboardStats), nil
	}
	s.metrics.DashboardCache.WithLabelValues("miss").Inc()

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(statsKey, stats)
	return stats, nil
}

func (s *Service) compute(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	recent, err := s.repo.RecentAppointments(ctx, RecentAppointmentsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent appointments: %w", err)
	}
	stats.RecentAppointments = recent
	return stats, nil
}

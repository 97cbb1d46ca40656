package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	stats *model.DashboardStats
	err   error
}

func (s stubService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return s.stats, s.err
}

func serve(svc Service) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	return w
}

func TestGetStats(t *testing.T) {
	w := serve(stubService{stats: &model.DashboardStats{AppointmentsToday: 3, StaffOnDuty: 2, TotalStaff: 5}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"appointments_today":3`)
	assert.Contains(t, w.Body.String(), `"staff_on_duty":2`)
}

func TestGetStatsStorageFailure(t *testing.T) {
	w := serve(stubService{err: apperrors.NewStorage(assert.AnError)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

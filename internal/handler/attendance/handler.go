package attendance

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/export"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
)

const resource = "Attendance record"

// Service is the subset of the scheduling service attendance needs.
type Service interface {
	CreateAttendance(ctx context.Context, a *model.Attendance) (*model.Attendance, error)
	GetAttendance(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	ListAttendance(ctx context.Context) ([]*model.AttendanceDetail, error)
	ListAttendanceBetween(ctx context.Context, from, to model.Date) ([]*model.AttendanceDetail, error)
	UpdateAttendance(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error)
	DeleteAttendance(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	service Service
	now     func() model.Date
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: model.Today}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.ListAttendance)
		attendance.GET("/export", h.ExportAttendance)
		attendance.GET("/:id", h.GetAttendance)
		attendance.POST("", h.CreateAttendance)
		attendance.PUT("/:id", h.UpdateAttendance)
		attendance.DELETE("/:id", admin, h.DeleteAttendance)
	}
}

func (h *Handler) CreateAttendance(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.service.CreateAttendance(c.Request.Context(), req.ToAttendance())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, record)
}

func (h *Handler) GetAttendance(c *gin.Context) {
	id, ok := handler.ParseID(c, resource)
	if !ok {
		return
	}

	record, err := h.service.GetAttendance(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

// ListAttendance accepts optional from and to query dates (YYYY-MM-DD).
func (h *Handler) ListAttendance(c *gin.Context) {
	records, err := h.list(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, records)
}

// ExportAttendance streams the same listing as an XLSX workbook.
func (h *Handler) ExportAttendance(c *gin.Context) {
	records, err := h.list(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	data, err := export.AttendanceXLSX(records)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}

	log.Info().Int("rows", len(records)).Str("request_id", c.GetString("request_id")).Msg("attendance exported")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, h.now()))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, ok := handler.ParseID(c, resource)
	if !ok {
		return
	}

	var req model.UpdateAttendanceRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.service.UpdateAttendance(c.Request.Context(), id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

func (h *Handler) DeleteAttendance(c *gin.Context) {
	id, ok := handler.ParseID(c, resource)
	if !ok {
		return
	}

	removed, err := h.service.DeleteAttendance(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if !removed {
		httputil.RespondWithError(c, apperrors.NewNotFound(resource, nil))
		return
	}
	httputil.RespondWithMessage(c, "Record removed")
}

func (h *Handler) list(c *gin.Context) ([]*model.AttendanceDetail, error) {
	from, err := queryDate(c, "from")
	if err != nil {
		return nil, err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return nil, err
	}

	if from.IsZero() && to.IsZero() {
		return h.service.ListAttendance(c.Request.Context())
	}
	return h.service.ListAttendanceBetween(c.Request.Context(), from, to)
}

func queryDate(c *gin.Context, name string) (model.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return model.Date{}, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, apperrors.NewValidation(fmt.Sprintf("%s must be a date (YYYY-MM-DD)", name), err)
	}
	return d, nil
}

package staff

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
)

type Service interface {
	Create(ctx context.Context, staff *model.Staff) (*model.Staff, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context) ([]*model.Staff, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateStaffRequest) (*model.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	staff := r.Group("/staff")
	{
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.POST("", admin, h.CreateStaff)
		staff.PUT("/:id", admin, h.UpdateStaff)
		staff.DELETE("/:id", admin, h.DeleteStaff)
	}
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	staff, err := h.service.Create(c.Request.Context(), req.ToStaff())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, staff)
}

func (h *Handler) GetStaff(c *gin.Context) {
	id, ok := handler.ParseID(c, "Staff")
	if !ok {
		return
	}

	staff, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := handler.ParseID(c, "Staff")
	if !ok {
		return
	}

	var req model.UpdateStaffRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	staff, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, staff)
}

// DeleteStaff leaves attendance and appointments that reference the member.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, ok := handler.ParseID(c, "Staff")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Staff removed")
}

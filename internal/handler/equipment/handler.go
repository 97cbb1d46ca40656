package equipment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
)

type Service interface {
	Create(ctx context.Context, e *model.Equipment) (*model.Equipment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	List(ctx context.Context) ([]*model.Equipment, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateEquipmentRequest) (*model.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes lets any signed in user update status, e.g. marking an
// item In Use; adding and retiring equipment is admin only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	equipment := r.Group("/equipment")
	{
		equipment.GET("", h.ListEquipment)
		equipment.GET("/:id", h.GetEquipment)
		equipment.PUT("/:id", h.UpdateEquipment)
		equipment.POST("", admin, h.CreateEquipment)
		equipment.DELETE("/:id", admin, h.DeleteEquipment)
	}
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var req model.CreateEquipmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Create(c.Request.Context(), req.ToEquipment())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, e)
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := handler.ParseID(c, "Equipment")
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, e)
}

func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := handler.ParseID(c, "Equipment")
	if !ok {
		return
	}

	var req model.UpdateEquipmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, e)
}

func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := handler.ParseID(c, "Equipment")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Equipment removed")
}

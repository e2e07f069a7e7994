package slot

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmiyata/schedule-api/internal/handler"
	"github.com/hmiyata/schedule-api/internal/middleware"
	"github.com/hmiyata/schedule-api/internal/model"
	slotService "github.com/hmiyata/schedule-api/internal/service/slot"
)

// Handler is the privileged mutation path for availability slots. The
// session boundary is enforced by the auth middleware; handlers trust it.
type Handler struct {
	service *slotService.Service
}

func NewHandler(service *slotService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSlotBatch(c *gin.Context) {
	var req model.CreateSlotBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	slots, err := h.service.CreateBatch(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(slots))
}

// ListSlots serves the admin schedule view. Without an explicit staff_id it
// is scoped to the signed-in staff member.
func (h *Handler) ListSlots(c *gin.Context) {
	filters := &model.SlotFilters{}

	if idStr := c.Query("staff_id"); idStr != "" {
		staffID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
			return
		}
		filters.StaffID = &staffID
	} else if claims, ok := middleware.SessionClaims(c); ok {
		filters.StaffID = &claims.StaffID
	}

	slots, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) UpdateSlotCapacity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid slot ID"))
		return
	}

	var req model.UpdateSlotCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsFull == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("is_full is required"))
		return
	}

	if err := h.service.SetCapacity(c.Request.Context(), id, *req.IsFull); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid slot ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	slots := r.Group("/slots")
	{
		slots.POST("", h.CreateSlotBatch)
		slots.GET("", h.ListSlots)
		slots.PATCH("/:id/capacity", h.UpdateSlotCapacity)
		slots.DELETE("/:id", h.DeleteSlot)
	}
}

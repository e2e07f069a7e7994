package schedule

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmiyata/schedule-api/internal/handler"
	"github.com/hmiyata/schedule-api/internal/model"
	slotService "github.com/hmiyata/schedule-api/internal/service/slot"
	staffService "github.com/hmiyata/schedule-api/internal/service/staff"
	"github.com/hmiyata/schedule-api/internal/viewcache"
)

// Handler is the public read-only path: visitors browse availability for one
// staff member or across everyone, no session required. List reads go
// through the view cache, which mutations invalidate wholesale.
type Handler struct {
	staffSvc *staffService.Service
	slotSvc  *slotService.Service
	views    *viewcache.Cache
}

func NewHandler(staffSvc *staffService.Service, slotSvc *slotService.Service, views *viewcache.Cache) *Handler {
	return &Handler{
		staffSvc: staffSvc,
		slotSvc:  slotSvc,
		views:    views,
	}
}

func (h *Handler) ListStaff(c *gin.Context) {
	const key = "views:staff"
	if cached, ok := h.views.Get(key); ok {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(cached))
		return
	}

	staff, err := h.staffSvc.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.views.Set(key, staff)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}

func (h *Handler) ListSlots(c *gin.Context) {
	filters := &model.SlotFilters{}
	key := "views:slots"

	if idStr := c.Query("staff_id"); idStr != "" {
		staffID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
			return
		}
		filters.StaffID = &staffID
		key += ":" + staffID.String()
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := model.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		filters.Date = &date
		key += fmt.Sprintf(":%s", date)
	}

	if cached, ok := h.views.Get(key); ok {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(cached))
		return
	}

	slots, err := h.slotSvc.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.views.Set(key, slots)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	schedule := r.Group("/schedule")
	{
		schedule.GET("/staff", h.ListStaff)
		schedule.GET("/slots", h.ListSlots)
	}
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// EventHandler handles community event HTTP requests
type EventHandler struct {
	eventService service.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// Create handles POST /api/v1/events
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateEventInput true "Event data"
// @Success 201 {object} utils.APIResponse "Event created"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var input service.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid event data", err)
		return
	}

	event, err := h.eventService.Create(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Event created successfully", event)
}

// Get handles GET /api/v1/events/:id
// @Summary Get event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} utils.APIResponse "Event retrieved"
// @Failure 404 {object} utils.APIResponse "Event not found"
// @Router /api/v1/events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid event ID", nil)
		return
	}

	event, err := h.eventService.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Event retrieved successfully", event)
}

// List handles GET /api/v1/events
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param rt_number query string false "RT number filter"
// @Param rw_number query string false "RW number filter"
// @Param upcoming query bool false "Only events starting from now"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Events retrieved"
// @Router /api/v1/events [get]
func (h *EventHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.EventFilter{
		RTNumber: c.Query("rt_number"),
		RWNumber: c.Query("rw_number"),
		Page:     page,
		Limit:    limit,
	}
	if c.Query("upcoming") == "true" {
		now := time.Now()
		filter.After = &now
	}

	events, total, err := h.eventService.List(middleware.ActorFromContext(c), filter)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Events retrieved successfully", utils.PaginatedResponse{
		Items: events,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Update handles PUT /api/v1/events/:id
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body service.UpdateEventInput true "Event data"
// @Success 200 {object} utils.APIResponse "Event updated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Event not found"
// @Router /api/v1/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid event ID", nil)
		return
	}

	var input service.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid event data", err)
		return
	}

	event, err := h.eventService.Update(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Event updated successfully", event)
}

// Delete handles DELETE /api/v1/events/:id
// @Summary Delete event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} utils.APIResponse "Event deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Event not found"
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid event ID", nil)
		return
	}

	if err := h.eventService.Delete(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Event deleted successfully", nil)
}

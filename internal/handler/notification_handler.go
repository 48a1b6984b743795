package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// BroadcastRequest represents a territory-wide announcement
type BroadcastRequest struct {
	RTNumber string `json:"rt_number"`
	RWNumber string `json:"rw_number"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// List handles GET /api/v1/notifications
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Unread only"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Notifications retrieved"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationService.List(middleware.ActorFromContext(c), unreadOnly, page, limit)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notifications retrieved successfully", utils.PaginatedResponse{
		Items: notifications,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// MarkRead handles POST /api/v1/notifications/:id/read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse "Notification marked read"
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationService.MarkRead(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification marked read", nil)
}

// MarkAllRead handles POST /api/v1/notifications/read-all
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse "Notifications marked read"
// @Router /api/v1/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(middleware.ActorFromContext(c)); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "All notifications marked read", nil)
}

// Broadcast handles POST /api/v1/notifications/broadcast
// @Summary Broadcast announcement
// @Description Send an announcement to every resident account in a territory
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BroadcastRequest true "Announcement"
// @Success 200 {object} utils.APIResponse "Broadcast sent"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid broadcast data", err)
		return
	}

	count, err := h.notificationService.Broadcast(middleware.ActorFromContext(c), req.RTNumber, req.RWNumber, req.Title, req.Message)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Broadcast sent successfully", gin.H{"recipients": count})
}

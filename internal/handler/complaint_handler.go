package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// ComplaintHandler handles complaint HTTP requests
type ComplaintHandler struct {
	complaintService service.ComplaintService
	logger           *logger.Logger
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService service.ComplaintService, logger *logger.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		logger:           logger,
	}
}

// Create handles POST /api/v1/complaints
// @Summary File a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateComplaintInput true "Complaint data"
// @Success 201 {object} utils.APIResponse "Complaint created"
// @Router /api/v1/complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	var input service.CreateComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid complaint data", err)
		return
	}

	complaint, err := h.complaintService.Create(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Complaint created successfully", complaint)
}

// Get handles GET /api/v1/complaints/:id
// @Summary Get complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse "Complaint retrieved"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Router /api/v1/complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid complaint ID", nil)
		return
	}

	complaint, err := h.complaintService.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Complaint retrieved successfully", complaint)
}

// List handles GET /api/v1/complaints
// @Summary List complaints
// @Description List complaints scoped to the actor's role
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Complaints retrieved"
// @Router /api/v1/complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.ComplaintFilter{
		RTNumber: c.Query("rt_number"),
		RWNumber: c.Query("rw_number"),
		Status:   models.ComplaintStatus(c.Query("status")),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	complaints, total, err := h.complaintService.List(middleware.ActorFromContext(c), filter)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Complaints retrieved successfully", utils.PaginatedResponse{
		Items: complaints,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Update handles PUT /api/v1/complaints/:id
// @Summary Update complaint
// @Description Edit a complaint; the creator may edit only while it is still DITERIMA
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param request body service.UpdateComplaintInput true "Complaint data"
// @Success 200 {object} utils.APIResponse "Complaint updated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/complaints/{id} [put]
func (h *ComplaintHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid complaint ID", nil)
		return
	}

	var input service.UpdateComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid complaint data", err)
		return
	}

	complaint, err := h.complaintService.Update(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Complaint updated successfully", complaint)
}

// Handle handles PATCH /api/v1/complaints/:id/status
// @Summary Handle complaint
// @Description Apply a complaint status transition
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param request body service.HandleComplaintInput true "Requested status"
// @Success 200 {object} utils.APIResponse "Status updated"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 403 {object} utils.APIResponse "Transition not allowed for role"
// @Router /api/v1/complaints/{id}/status [patch]
func (h *ComplaintHandler) Handle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid complaint ID", nil)
		return
	}

	var input service.HandleComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid status data", err)
		return
	}

	complaint, err := h.complaintService.Handle(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Complaint status updated successfully", complaint)
}

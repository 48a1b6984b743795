package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// AssistanceHandler handles social assistance HTTP requests
type AssistanceHandler struct {
	assistanceService service.AssistanceService
	logger            *logger.Logger
}

// NewAssistanceHandler creates a new social assistance handler
func NewAssistanceHandler(assistanceService service.AssistanceService, logger *logger.Logger) *AssistanceHandler {
	return &AssistanceHandler{
		assistanceService: assistanceService,
		logger:            logger,
	}
}

// programWithRecipients pairs a program with its recipient list
type programWithRecipients struct {
	Program    interface{} `json:"program"`
	Recipients interface{} `json:"recipients"`
}

// CreateProgram handles POST /api/v1/assistance
// @Summary Create assistance program
// @Tags assistance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateProgramInput true "Program data"
// @Success 201 {object} utils.APIResponse "Program created"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance [post]
func (h *AssistanceHandler) CreateProgram(c *gin.Context) {
	var input service.CreateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid program data", err)
		return
	}

	program, err := h.assistanceService.CreateProgram(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Assistance program created successfully", program)
}

// GetProgram handles GET /api/v1/assistance/:id
// @Summary Get assistance program
// @Tags assistance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} utils.APIResponse "Program retrieved"
// @Failure 404 {object} utils.APIResponse "Program not found"
// @Router /api/v1/assistance/{id} [get]
func (h *AssistanceHandler) GetProgram(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid program ID", nil)
		return
	}

	program, recipients, err := h.assistanceService.GetProgram(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assistance program retrieved successfully", programWithRecipients{
		Program:    program,
		Recipients: recipients,
	})
}

// ListPrograms handles GET /api/v1/assistance
// @Summary List assistance programs
// @Tags assistance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Programs retrieved"
// @Router /api/v1/assistance [get]
func (h *AssistanceHandler) ListPrograms(c *gin.Context) {
	page, limit := parsePagination(c)

	programs, total, err := h.assistanceService.ListPrograms(middleware.ActorFromContext(c), page, limit)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assistance programs retrieved successfully", utils.PaginatedResponse{
		Items: programs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UpdateProgram handles PUT /api/v1/assistance/:id
// @Summary Update assistance program
// @Tags assistance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body service.UpdateProgramInput true "Program data"
// @Success 200 {object} utils.APIResponse "Program updated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance/{id} [put]
func (h *AssistanceHandler) UpdateProgram(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid program ID", nil)
		return
	}

	var input service.UpdateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid program data", err)
		return
	}

	program, err := h.assistanceService.UpdateProgram(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assistance program updated successfully", program)
}

// DeleteProgram handles DELETE /api/v1/assistance/:id
// @Summary Delete assistance program
// @Tags assistance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} utils.APIResponse "Program deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance/{id} [delete]
func (h *AssistanceHandler) DeleteProgram(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid program ID", nil)
		return
	}

	if err := h.assistanceService.DeleteProgram(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assistance program deleted successfully", nil)
}

// AddRecipient handles POST /api/v1/assistance/:id/recipients
// @Summary Add program recipient
// @Tags assistance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body service.AddRecipientInput true "Recipient data"
// @Success 201 {object} utils.APIResponse "Recipient added"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance/{id}/recipients [post]
func (h *AssistanceHandler) AddRecipient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid program ID", nil)
		return
	}

	var input service.AddRecipientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid recipient data", err)
		return
	}

	recipient, err := h.assistanceService.AddRecipient(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Recipient added successfully", recipient)
}

// VerifyRecipient handles POST /api/v1/assistance/recipients/:id/verify
// @Summary Verify program recipient
// @Tags assistance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Success 200 {object} utils.APIResponse "Recipient verified"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance/recipients/{id}/verify [post]
func (h *AssistanceHandler) VerifyRecipient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid recipient ID", nil)
		return
	}

	recipient, err := h.assistanceService.VerifyRecipient(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Recipient verified successfully", recipient)
}

// RemoveRecipient handles DELETE /api/v1/assistance/recipients/:id
// @Summary Remove program recipient
// @Tags assistance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Success 200 {object} utils.APIResponse "Recipient removed"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/assistance/recipients/{id} [delete]
func (h *AssistanceHandler) RemoveRecipient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid recipient ID", nil)
		return
	}

	if err := h.assistanceService.RemoveRecipient(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Recipient removed successfully", nil)
}

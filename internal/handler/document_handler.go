package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// DocumentHandler handles document request HTTP requests
type DocumentHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// Request handles POST /api/v1/documents
// @Summary Request a document
// @Description File a new administrative letter request; requires a verified resident profile
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RequestDocumentInput true "Document request"
// @Success 201 {object} utils.APIResponse "Request created"
// @Failure 403 {object} utils.APIResponse "Profile not verified"
// @Router /api/v1/documents [post]
func (h *DocumentHandler) Request(c *gin.Context) {
	var input service.RequestDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid document request", err)
		return
	}

	document, err := h.documentService.Request(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Document request created successfully", document)
}

// Get handles GET /api/v1/documents/:id
// @Summary Get document request
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} utils.APIResponse "Document retrieved"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Document not found"
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	document, err := h.documentService.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document retrieved successfully", document)
}

// List handles GET /api/v1/documents
// @Summary List document requests
// @Description List document requests scoped to the actor's role
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param type query string false "Type filter"
// @Param requester_id query int false "Requester filter (ADMIN/RW)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Documents retrieved"
// @Router /api/v1/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.DocumentFilter{
		RTNumber: c.Query("rt_number"),
		RWNumber: c.Query("rw_number"),
		Status:   models.DocumentStatus(c.Query("status")),
		Type:     c.Query("type"),
		Page:     page,
		Limit:    limit,
	}
	if requester := c.Query("requester_id"); requester != "" {
		if value, err := strconv.ParseUint(requester, 10, 32); err == nil {
			id := uint(value)
			filter.RequesterID = &id
		}
	}

	documents, total, err := h.documentService.List(middleware.ActorFromContext(c), filter)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Documents retrieved successfully", utils.PaginatedResponse{
		Items: documents,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Process handles PATCH /api/v1/documents/:id/status
// @Summary Process document request
// @Description Apply a status transition; rejection requires a non-empty reason
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body service.ProcessDocumentInput true "Requested status"
// @Success 200 {object} utils.APIResponse "Status updated"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 403 {object} utils.APIResponse "Transition not allowed for role"
// @Failure 404 {object} utils.APIResponse "Document not found"
// @Router /api/v1/documents/{id}/status [patch]
func (h *DocumentHandler) Process(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	var input service.ProcessDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid status data", err)
		return
	}

	document, err := h.documentService.Process(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document status updated successfully", document)
}

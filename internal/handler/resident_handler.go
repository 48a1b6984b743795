package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// ResidentHandler handles resident HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	logger          *logger.Logger
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(residentService service.ResidentService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		logger:          logger,
	}
}

func residentFilterFromQuery(c *gin.Context) repository.ResidentFilter {
	page, limit := parsePagination(c)
	filter := repository.ResidentFilter{
		RTNumber: c.Query("rt_number"),
		RWNumber: c.Query("rw_number"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if verified := c.Query("is_verified"); verified != "" {
		if value, err := strconv.ParseBool(verified); err == nil {
			filter.IsVerified = &value
		}
	}
	return filter
}

// Create handles POST /api/v1/residents
// @Summary Create resident
// @Description Register a resident on behalf of someone without an account; the entry starts unverified
// @Tags residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateResidentInput true "Resident data"
// @Success 201 {object} utils.APIResponse "Resident created"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/residents [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	var input service.CreateResidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid resident data", err)
		return
	}

	resident, err := h.residentService.Create(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Resident created successfully", resident)
}

// Get handles GET /api/v1/residents/:id
// @Summary Get resident
// @Tags residents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse "Resident retrieved"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Router /api/v1/residents/{id} [get]
func (h *ResidentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid resident ID", nil)
		return
	}

	resident, err := h.residentService.Get(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Resident retrieved successfully", resident)
}

// List handles GET /api/v1/residents
// @Summary List residents
// @Description List residents scoped to the actor's role
// @Tags residents
// @Produce json
// @Security BearerAuth
// @Param rt_number query string false "RT number filter"
// @Param rw_number query string false "RW number filter"
// @Param is_verified query bool false "Verification filter"
// @Param search query string false "Name or NIK search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Residents retrieved"
// @Router /api/v1/residents [get]
func (h *ResidentHandler) List(c *gin.Context) {
	filter := residentFilterFromQuery(c)

	residents, total, err := h.residentService.List(middleware.ActorFromContext(c), filter)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Residents retrieved successfully", utils.PaginatedResponse{
		Items: residents,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Update handles PUT /api/v1/residents/:id
// @Summary Update resident profile
// @Tags residents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param request body service.UpdateResidentInput true "Profile data"
// @Success 200 {object} utils.APIResponse "Resident updated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Router /api/v1/residents/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid resident ID", nil)
		return
	}

	var input service.UpdateResidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid resident data", err)
		return
	}

	resident, err := h.residentService.Update(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Resident updated successfully", resident)
}

// Verify handles POST /api/v1/residents/:id/verify
// @Summary Verify resident
// @Description Mark a resident verified by their RT; verification is one-way
// @Tags residents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse "Resident verified"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Router /api/v1/residents/{id}/verify [post]
func (h *ResidentHandler) Verify(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid resident ID", nil)
		return
	}

	resident, err := h.residentService.Verify(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Resident verified successfully", resident)
}

// Export handles GET /api/v1/residents/export
// @Summary Export residents to Excel
// @Description Download resident data as an .xlsx file, scoped like the list endpoint
// @Tags residents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param rt_number query string false "RT number filter"
// @Param rw_number query string false "RW number filter"
// @Success 200 {file} binary "Excel file"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/residents/export [get]
func (h *ResidentHandler) Export(c *gin.Context) {
	filter := residentFilterFromQuery(c)

	data, filename, err := h.residentService.ExportToExcel(middleware.ActorFromContext(c), filter)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

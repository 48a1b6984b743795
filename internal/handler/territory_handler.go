package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// TerritoryHandler handles RT/RW provisioning and management HTTP requests
type TerritoryHandler struct {
	territoryService service.TerritoryService
	logger           *logger.Logger
}

// NewTerritoryHandler creates a new territory handler
func NewTerritoryHandler(territoryService service.TerritoryService, logger *logger.Logger) *TerritoryHandler {
	return &TerritoryHandler{
		territoryService: territoryService,
		logger:           logger,
	}
}

// UpdateRTRequest represents RT profile edits
type UpdateRTRequest struct {
	Chairman string `json:"chairman"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ProvisionRT handles POST /api/v1/territories/rt
// @Summary Provision an RT
// @Description Create an RT record together with its login account; the generated credentials are returned exactly once
// @Tags territories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProvisionRTInput true "RT data"
// @Success 201 {object} utils.APIResponse{data=service.ProvisionRTResult} "RT provisioned"
// @Failure 400 {object} utils.APIResponse "Invalid input"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 409 {object} utils.APIResponse "RT number or email already in use"
// @Router /api/v1/territories/rt [post]
func (h *TerritoryHandler) ProvisionRT(c *gin.Context) {
	var input service.ProvisionRTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid RT data", err)
		return
	}

	result, err := h.territoryService.ProvisionRT(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "RT provisioned successfully", result)
}

// ProvisionRW handles POST /api/v1/territories/rw
// @Summary Provision an RW
// @Description Create an RW record together with its login account
// @Tags territories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProvisionRWInput true "RW data"
// @Success 201 {object} utils.APIResponse{data=service.ProvisionRWResult} "RW provisioned"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 409 {object} utils.APIResponse "RW number or email already in use"
// @Router /api/v1/territories/rw [post]
func (h *TerritoryHandler) ProvisionRW(c *gin.Context) {
	var input service.ProvisionRWInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid RW data", err)
		return
	}

	result, err := h.territoryService.ProvisionRW(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "RW provisioned successfully", result)
}

// GetRT handles GET /api/v1/territories/rt/:id
// @Summary Get RT
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Param id path int true "RT ID"
// @Success 200 {object} utils.APIResponse "RT retrieved"
// @Failure 404 {object} utils.APIResponse "RT not found"
// @Router /api/v1/territories/rt/{id} [get]
func (h *TerritoryHandler) GetRT(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RT ID", nil)
		return
	}

	rt, err := h.territoryService.GetRT(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RT retrieved successfully", rt)
}

// GetRW handles GET /api/v1/territories/rw/:id
// @Summary Get RW
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Param id path int true "RW ID"
// @Success 200 {object} utils.APIResponse "RW retrieved"
// @Failure 404 {object} utils.APIResponse "RW not found"
// @Router /api/v1/territories/rw/{id} [get]
func (h *TerritoryHandler) GetRW(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RW ID", nil)
		return
	}

	rw, err := h.territoryService.GetRW(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RW retrieved successfully", rw)
}

// ListRTs handles GET /api/v1/territories/rt
// @Summary List RTs
// @Description List RTs with resident counts, optionally filtered by RW number
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Param rw_number query string false "RW number filter"
// @Success 200 {object} utils.APIResponse "RTs retrieved"
// @Router /api/v1/territories/rt [get]
func (h *TerritoryHandler) ListRTs(c *gin.Context) {
	rts, err := h.territoryService.ListRTs(middleware.ActorFromContext(c), c.Query("rw_number"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RTs retrieved successfully", rts)
}

// ListRWs handles GET /api/v1/territories/rw
// @Summary List RWs
// @Description List RWs with RT and resident counts
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse "RWs retrieved"
// @Router /api/v1/territories/rw [get]
func (h *TerritoryHandler) ListRWs(c *gin.Context) {
	rws, err := h.territoryService.ListRWs(middleware.ActorFromContext(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RWs retrieved successfully", rws)
}

// UpdateRT handles PUT /api/v1/territories/rt/:id
// @Summary Update RT profile
// @Tags territories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "RT ID"
// @Param request body UpdateRTRequest true "RT profile data"
// @Success 200 {object} utils.APIResponse "RT updated"
// @Failure 404 {object} utils.APIResponse "RT not found"
// @Router /api/v1/territories/rt/{id} [put]
func (h *TerritoryHandler) UpdateRT(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RT ID", nil)
		return
	}

	var req UpdateRTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid RT data", err)
		return
	}

	rt, err := h.territoryService.UpdateRT(middleware.ActorFromContext(c), id, req.Chairman, req.Phone, req.Address)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RT updated successfully", rt)
}

// UpdateRW handles PUT /api/v1/territories/rw/:id
// @Summary Update RW profile
// @Tags territories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "RW ID"
// @Param request body UpdateRTRequest true "RW profile data"
// @Success 200 {object} utils.APIResponse "RW updated"
// @Failure 404 {object} utils.APIResponse "RW not found"
// @Router /api/v1/territories/rw/{id} [put]
func (h *TerritoryHandler) UpdateRW(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RW ID", nil)
		return
	}

	var req UpdateRTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid RW data", err)
		return
	}

	rw, err := h.territoryService.UpdateRW(middleware.ActorFromContext(c), id, req.Chairman, req.Phone, req.Address)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RW updated successfully", rw)
}

// DeactivateRT handles DELETE /api/v1/territories/rt/:id
// @Summary Deactivate RT
// @Description Deactivate an RT with no remaining residents; the record is kept
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Param id path int true "RT ID"
// @Success 200 {object} utils.APIResponse "RT deactivated"
// @Failure 409 {object} utils.APIResponse "RT still has residents"
// @Router /api/v1/territories/rt/{id} [delete]
func (h *TerritoryHandler) DeactivateRT(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RT ID", nil)
		return
	}

	if err := h.territoryService.DeactivateRT(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RT deactivated successfully", nil)
}

// DeactivateRW handles DELETE /api/v1/territories/rw/:id
// @Summary Deactivate RW
// @Description Deactivate an RW with no remaining residents; the record is kept
// @Tags territories
// @Produce json
// @Security BearerAuth
// @Param id path int true "RW ID"
// @Success 200 {object} utils.APIResponse "RW deactivated"
// @Failure 409 {object} utils.APIResponse "RW still has residents"
// @Router /api/v1/territories/rw/{id} [delete]
func (h *TerritoryHandler) DeactivateRW(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid RW ID", nil)
		return
	}

	if err := h.territoryService.DeactivateRW(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "RW deactivated successfully", nil)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"warga@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register handles POST /api/v1/auth/register
// @Summary Register a resident account
// @Description Create a WARGA account with an unverified resident profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} utils.APIResponse "Account created"
// @Failure 400 {object} utils.APIResponse "Invalid input"
// @Failure 409 {object} utils.APIResponse "Email already registered"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid registration data", err)
		return
	}

	user, err := h.authService.Register(input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", user)
}

// Login handles POST /api/v1/auth/login
// @Summary Login
// @Description Verify credentials and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=LoginResponse} "Login successful"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid login data", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", LoginResponse{
		Token: token,
		User:  user,
	})
}

// Me handles GET /api/v1/auth/me
// @Summary Current actor
// @Description Return the authenticated actor's identity, role and territory
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse "Actor retrieved"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Authenticated() {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}
	utils.SuccessResponse(c, "Actor retrieved successfully", actor)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// ForumHandler handles forum HTTP requests
type ForumHandler struct {
	forumService service.ForumService
	logger       *logger.Logger
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forumService service.ForumService, logger *logger.Logger) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
		logger:       logger,
	}
}

// CreateCommentRequest represents a new comment body
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ModeratePostRequest toggles a moderation flag
type ModeratePostRequest struct {
	Value bool `json:"value"`
}

// postWithComments pairs a post with its comments
type postWithComments struct {
	Post     interface{} `json:"post"`
	Comments interface{} `json:"comments"`
}

// CreatePost handles POST /api/v1/forum/posts
// @Summary Create forum post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePostInput true "Post data"
// @Success 201 {object} utils.APIResponse "Post created"
// @Router /api/v1/forum/posts [post]
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var input service.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid post data", err)
		return
	}

	post, err := h.forumService.CreatePost(middleware.ActorFromContext(c), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Post created successfully", post)
}

// GetPost handles GET /api/v1/forum/posts/:id
// @Summary Get forum post
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} utils.APIResponse "Post retrieved"
// @Failure 404 {object} utils.APIResponse "Post not found"
// @Router /api/v1/forum/posts/{id} [get]
func (h *ForumHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	post, comments, err := h.forumService.GetPost(middleware.ActorFromContext(c), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Post retrieved successfully", postWithComments{
		Post:     post,
		Comments: comments,
	})
}

// ListPosts handles GET /api/v1/forum/posts
// @Summary List forum posts
// @Description List posts, pinned first then newest
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PaginatedResponse} "Posts retrieved"
// @Router /api/v1/forum/posts [get]
func (h *ForumHandler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)

	posts, total, err := h.forumService.ListPosts(middleware.ActorFromContext(c), page, limit)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Posts retrieved successfully", utils.PaginatedResponse{
		Items: posts,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UpdatePost handles PUT /api/v1/forum/posts/:id
// @Summary Update forum post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.UpdatePostInput true "Post data"
// @Success 200 {object} utils.APIResponse "Post updated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/forum/posts/{id} [put]
func (h *ForumHandler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	var input service.UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid post data", err)
		return
	}

	post, err := h.forumService.UpdatePost(middleware.ActorFromContext(c), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Post updated successfully", post)
}

// DeletePost handles DELETE /api/v1/forum/posts/:id
// @Summary Delete forum post
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} utils.APIResponse "Post deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/forum/posts/{id} [delete]
func (h *ForumHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	if err := h.forumService.DeletePost(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Post deleted successfully", nil)
}

// LockPost handles POST /api/v1/forum/posts/:id/lock
// @Summary Lock or unlock post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body ModeratePostRequest true "Lock flag"
// @Success 200 {object} utils.APIResponse "Lock state changed"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/forum/posts/{id}/lock [post]
func (h *ForumHandler) LockPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	var req ModeratePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid lock data", err)
		return
	}

	post, err := h.forumService.LockPost(middleware.ActorFromContext(c), id, req.Value)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Post lock state changed successfully", post)
}

// PinPost handles POST /api/v1/forum/posts/:id/pin
// @Summary Pin or unpin post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body ModeratePostRequest true "Pin flag"
// @Success 200 {object} utils.APIResponse "Pin state changed"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/forum/posts/{id}/pin [post]
func (h *ForumHandler) PinPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	var req ModeratePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid pin data", err)
		return
	}

	post, err := h.forumService.PinPost(middleware.ActorFromContext(c), id, req.Value)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Post pin state changed successfully", post)
}

// CreateComment handles POST /api/v1/forum/posts/:id/comments
// @Summary Comment on post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} utils.APIResponse "Comment created"
// @Failure 403 {object} utils.APIResponse "Post is locked"
// @Router /api/v1/forum/posts/{id}/comments [post]
func (h *ForumHandler) CreateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid post ID", nil)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid comment data", err)
		return
	}

	comment, err := h.forumService.CreateComment(middleware.ActorFromContext(c), id, req.Content)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Comment created successfully", comment)
}

// DeleteComment handles DELETE /api/v1/forum/comments/:id
// @Summary Delete comment
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} utils.APIResponse "Comment deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/forum/comments/{id} [delete]
func (h *ForumHandler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	if err := h.forumService.DeleteComment(middleware.ActorFromContext(c), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Comment deleted successfully", nil)
}

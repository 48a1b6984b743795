package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	residentService service.ResidentService,
	territoryService service.TerritoryService,
	documentService service.DocumentService,
	complaintService service.ComplaintService,
	eventService service.EventService,
	assistanceService service.AssistanceService,
	forumService service.ForumService,
	notificationService service.NotificationService,
	dashboardService service.DashboardService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(authService, logger)
	residentHandler := NewResidentHandler(residentService, logger)
	territoryHandler := NewTerritoryHandler(territoryService, logger)
	documentHandler := NewDocumentHandler(documentService, logger)
	complaintHandler := NewComplaintHandler(complaintService, logger)
	eventHandler := NewEventHandler(eventService, logger)
	assistanceHandler := NewAssistanceHandler(assistanceService, logger)
	forumHandler := NewForumHandler(forumService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Everything below requires a valid token
		protected := v1.Group("")
		protected.Use(middleware.Authenticate(authService))
		{
			protected.GET("/auth/me", authHandler.Me)

			// Resident routes
			residents := protected.Group("/residents")
			{
				residents.POST("", residentHandler.Create)
				residents.GET("", residentHandler.List)
				residents.GET("/export", residentHandler.Export)
				residents.GET("/:id", residentHandler.Get)
				residents.PUT("/:id", residentHandler.Update)
				residents.POST("/:id/verify", residentHandler.Verify)
			}

			// Territory routes
			territories := protected.Group("/territories")
			{
				territories.POST("/rt", territoryHandler.ProvisionRT)
				territories.GET("/rt", territoryHandler.ListRTs)
				territories.GET("/rt/:id", territoryHandler.GetRT)
				territories.PUT("/rt/:id", territoryHandler.UpdateRT)
				territories.DELETE("/rt/:id", territoryHandler.DeactivateRT)

				territories.POST("/rw", territoryHandler.ProvisionRW)
				territories.GET("/rw", territoryHandler.ListRWs)
				territories.GET("/rw/:id", territoryHandler.GetRW)
				territories.PUT("/rw/:id", territoryHandler.UpdateRW)
				territories.DELETE("/rw/:id", territoryHandler.DeactivateRW)
			}

			// Document routes
			documents := protected.Group("/documents")
			{
				documents.POST("", documentHandler.Request)
				documents.GET("", documentHandler.List)
				documents.GET("/:id", documentHandler.Get)
				documents.PATCH("/:id/status", documentHandler.Process)
			}

			// Complaint routes
			complaints := protected.Group("/complaints")
			{
				complaints.POST("", complaintHandler.Create)
				complaints.GET("", complaintHandler.List)
				complaints.GET("/:id", complaintHandler.Get)
				complaints.PUT("/:id", complaintHandler.Update)
				complaints.PATCH("/:id/status", complaintHandler.Handle)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.POST("", eventHandler.Create)
				events.GET("", eventHandler.List)
				events.GET("/:id", eventHandler.Get)
				events.PUT("/:id", eventHandler.Update)
				events.DELETE("/:id", eventHandler.Delete)
			}

			// Social assistance routes
			assistance := protected.Group("/assistance")
			{
				assistance.POST("", assistanceHandler.CreateProgram)
				assistance.GET("", assistanceHandler.ListPrograms)
				assistance.GET("/:id", assistanceHandler.GetProgram)
				assistance.PUT("/:id", assistanceHandler.UpdateProgram)
				assistance.DELETE("/:id", assistanceHandler.DeleteProgram)
				assistance.POST("/:id/recipients", assistanceHandler.AddRecipient)
				assistance.POST("/recipients/:id/verify", assistanceHandler.VerifyRecipient)
				assistance.DELETE("/recipients/:id", assistanceHandler.RemoveRecipient)
			}

			// Forum routes
			forum := protected.Group("/forum")
			{
				forum.POST("/posts", forumHandler.CreatePost)
				forum.GET("/posts", forumHandler.ListPosts)
				forum.GET("/posts/:id", forumHandler.GetPost)
				forum.PUT("/posts/:id", forumHandler.UpdatePost)
				forum.DELETE("/posts/:id", forumHandler.DeletePost)
				forum.POST("/posts/:id/lock", forumHandler.LockPost)
				forum.POST("/posts/:id/pin", forumHandler.PinPost)
				forum.POST("/posts/:id/comments", forumHandler.CreateComment)
				forum.DELETE("/comments/:id", forumHandler.DeleteComment)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("/read-all", notificationHandler.MarkAllRead)
				notifications.POST("/broadcast", notificationHandler.Broadcast)
				notifications.POST("/:id/read", notificationHandler.MarkRead)
			}

			// Dashboard routes
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/statistics", dashboardHandler.GetStatistics)
			}
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Smart RW Backend Service",
	})
}

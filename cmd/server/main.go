package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/docs"
	"smart-rw-svc/internal/config"
	"smart-rw-svc/internal/database"
	"smart-rw-svc/internal/handler"
	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/internal/scheduler"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
)

// @title Smart RW Backend Service API
// @version 1.0
// @description RESTful API for neighborhood (RT/RW) administration
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Smart RW Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for neighborhood (RT/RW) administration"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Smart RW Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	residentRepo := repository.NewResidentRepository(db.DB)
	territoryRepo := repository.NewTerritoryRepository(db.DB)
	documentRepo := repository.NewDocumentRepository(db.DB)
	complaintRepo := repository.NewComplaintRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)
	assistanceRepo := repository.NewAssistanceRepository(db.DB)
	forumRepo := repository.NewForumRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, residentRepo, territoryRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours, appLogger)
	residentService := service.NewResidentService(residentRepo, appLogger)
	territoryService := service.NewTerritoryService(territoryRepo, userRepo, cfg.Account.EmailDomain, appLogger)
	documentService := service.NewDocumentService(documentRepo, residentRepo, notificationRepo, appLogger)
	complaintService := service.NewComplaintService(complaintRepo, residentRepo, notificationRepo, appLogger)
	eventService := service.NewEventService(eventRepo, appLogger)
	assistanceService := service.NewAssistanceService(assistanceRepo, residentRepo, appLogger)
	forumService := service.NewForumService(forumRepo, residentRepo, appLogger)
	notificationService := service.NewNotificationService(notificationRepo, residentRepo, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(&cfg.CORS))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, authService, residentService, territoryService, documentService, complaintService, eventService, assistanceService, forumService, notificationService, dashboardService, appLogger)

	// Start event reminder scheduler
	eventScheduler := scheduler.NewEventScheduler(eventRepo, residentRepo, notificationRepo, schedulerLogRepo, appLogger, cfg.Scheduler.EventReminderCronExpression)
	if err := eventScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start event scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Stop the scheduler
	eventScheduler.Stop()

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}

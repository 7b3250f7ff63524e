package main

import (
	"log"
	"os"

	_ "ocms/api/swagger" // swagger docs
	"ocms/internal/database"
	"ocms/internal/gateway"
	"ocms/internal/handler"
	"ocms/internal/middleware"
	"ocms/internal/repository"
	"ocms/internal/service"
	"ocms/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Offence Case Management Furnish API
// @version         1.0
// @description     Furnish submission, auto-approval and officer review workflow for traffic offence notices.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for the live officer audit feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Outbound transports
	emailSender := gateway.NewEmailGateway(os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"), os.Getenv("SMTP_FROM"))
	smsSender := gateway.NewSmsGateway(os.Getenv("SMS_GATEWAY_URL"))
	portalClient := gateway.NewPortalGateway(os.Getenv("PORTAL_BASE_URL"))

	// Set up dependencies (Repository -> Service -> Handler)
	tm := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	applicationRepo := repository.NewFurnishApplicationRepository(db)
	docRepo := repository.NewFurnishDocRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	ownerDriverRepo := repository.NewOwnerDriverRepository(db)
	suspensionRepo := repository.NewSuspensionRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	auditService := service.NewFurnishAuditService(auditRepo, wsHub)
	validator := service.NewFurnishValidator(noticeRepo, ownerDriverRepo, applicationRepo, blacklistRepo)
	persistence := service.NewFurnishPersistenceService(applicationRepo, docRepo, ownerDriverRepo, suspensionRepo)
	notificationService := service.NewFurnishNotificationService(emailSender, smsSender, notificationRepo)
	dashboardService := service.NewFurnishDashboardService(applicationRepo, docRepo, noticeRepo)
	submissionService := service.NewFurnishSubmissionService(validator, persistence, auditService, tm)
	approvalService := service.NewFurnishApprovalService(applicationRepo, persistence, dashboardService, notificationService, auditService, tm)
	rejectionService := service.NewFurnishRejectionService(applicationRepo, dashboardService, notificationService, portalClient, auditService, tm)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(userService)
	submissionHandler := handler.NewFurnishSubmissionHandler(submissionService)
	dashboardHandler := handler.NewFurnishDashboardHandler(dashboardService, auditService)
	reviewHandler := handler.NewFurnishReviewHandler(approvalService, rejectionService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for the live audit feed
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	submissionHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"fmt"
	"log"

	"findmydocs/internal/config"
	"findmydocs/internal/email/noop"
	"findmydocs/internal/email/ses"
	"findmydocs/internal/handler"
	"findmydocs/internal/port"
	"findmydocs/internal/repository/postgres"
	"findmydocs/internal/router"
	"findmydocs/internal/service"
	s3storage "findmydocs/internal/storage/s3"
	"findmydocs/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	registrationRepo := postgres.NewRegistrationRepo(db)
	requestRepo := postgres.NewRequestRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.PortalURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(cfg.Email.PortalURL)
	}

	// Initialize workflow engine
	engine := workflow.NewEngine()

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	requestSvc := service.NewRequestService(engine, requestRepo, userRepo, notificationRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	registrationSvc := service.NewRegistrationService(registrationRepo, userRepo, emailSender)
	userSvc := service.NewUserService(userRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, registrationSvc)
	requestH := handler.NewRequestHandler(requestSvc, userSvc)
	notificationH := handler.NewNotificationHandler(notificationSvc)
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	userH := handler.NewUserHandler(userSvc)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, requestH, notificationH, registrationH, userH, fileH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/database"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/config"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/email"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/enrichment"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/handlers"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/middleware"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/routes"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/storage"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/validator"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/workers"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env != "production")
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Database migration failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ginRouter, serviceContainer := SetupRouter(ctx, cfg, gormDB, sqlDB)

	positionWorker := workers.NewJobPositionWorker(gormDB, serviceContainer.JobPositionService, cfg.Workers.PositionCloseInterval)
	positionWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	logger.Info("Server stopped")
}

func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(ctx, cfg, storageInstance)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, sqlDB)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(ctx context.Context, cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	emailService := newEmailProvider(cfg)
	gateway := newEnrichmentGateway(ctx, cfg, storageInstance)

	// --- Инициализация репозиториев ---
	jobRepo := repositories.NewJobPositionRepository()
	candidateRepo := repositories.NewCandidateProfileRepository()
	applicationRepo := repositories.NewApplicationRepository()
	interviewRepo := repositories.NewInterviewRepository()
	reportRepo := repositories.NewReportRepository()

	// --- Инициализация сервисов ---
	jobPositionService := services.NewJobPositionService(jobRepo)
	candidateService := services.NewCandidateProfileService(candidateRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, candidateService, gateway, storageInstance, cfg.Storage.MaxSize)
	interviewService := services.NewInterviewService(interviewRepo, applicationRepo, jobRepo, emailService)
	recommendationService := services.NewRecommendationService(jobRepo, applicationRepo, candidateRepo)
	reportService := services.NewReportService(reportRepo)

	return &services.ServiceContainer{
		JobPositionService:      jobPositionService,
		CandidateProfileService: candidateService,
		ApplicationService:      applicationService,
		InterviewService:        interviewService,
		RecommendationService:   recommendationService,
		ReportService:           reportService,
	}
}

func initializeHandlers(services *services.ServiceContainer, sqlDB *sql.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	var pinger handlers.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}

	return &handlers.AppHandlers{
		HealthHandler:           handlers.NewHealthHandler(pinger),
		JobPositionHandler:      handlers.NewJobPositionHandler(baseHandler, services.JobPositionService),
		CandidateProfileHandler: handlers.NewCandidateProfileHandler(baseHandler, services.CandidateProfileService),
		ApplicationHandler:      handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		InterviewHandler:        handlers.NewInterviewHandler(baseHandler, services.InterviewService),
		RecommendationHandler:   handlers.NewRecommendationHandler(baseHandler, services.RecommendationService),
		ReportHandler:           handlers.NewReportHandler(baseHandler, services.ReportService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout))
	router.Use(middleware.ActorMiddleware(cfg.JWT.Secret))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = cfg.Storage.MaxSize
	return router
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, interview invitations are only logged")
		return email.NoopProvider{}
	}

	provider := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUser,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("Invalid SMTP configuration, falling back to log-only email", "error", err)
		return email.NoopProvider{}
	}
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func newEnrichmentGateway(ctx context.Context, cfg *config.Config, storageInstance storage.Storage) enrichment.Gateway {
	if !cfg.Enrichment.Enabled {
		logger.Info("Resume enrichment disabled")
		return enrichment.Disabled{}
	}

	analyzer, err := enrichment.NewGeminiAnalyzer(ctx, cfg.Enrichment.APIKey, cfg.Enrichment.Model)
	if err != nil {
		logger.Warn("Resume enrichment unavailable, continuing without it", "error", err)
		return enrichment.Disabled{}
	}

	extractor := enrichment.NewResumeExtractor(storageInstance, &http.Client{Timeout: cfg.Enrichment.Timeout}, resumeHosts(cfg))
	logger.Info("Resume enrichment enabled", "model", cfg.Enrichment.Model, "timeout", cfg.Enrichment.Timeout)
	return enrichment.NewGateway(extractor, analyzer, cfg.Enrichment.Timeout)
}

// resumeHosts - белый список хостов для резюме по URL: из конфига плюс хост публичного URL хранилища
func resumeHosts(cfg *config.Config) []string {
	hosts := append([]string{}, cfg.Enrichment.AllowedResumeHosts...)
	if u, err := url.Parse(cfg.Storage.BaseURL); err == nil && u.Hostname() != "" {
		hosts = append(hosts, u.Hostname())
	}
	return hosts
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/database"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/imageprocessor"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/validator"
	"jobportal_backend/internal/workers"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	storageInstance, err := storage.NewStorage(ctx, storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	provider, err := NewEmailProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	dispatcher, err := newDispatcher(cfg, provider)
	if err != nil {
		logger.Fatal("Failed to initialize email dispatcher", "error", err)
	}
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Error("Failed to close email dispatcher", "error", err)
		}
		if err := provider.Close(); err != nil {
			logger.Error("Failed to close email provider", "error", err)
		}
	}()

	jobWorker := workers.NewJobWorker(
		gormDB,
		repositories.NewJobRepository(),
		repositories.NewRefreshTokenRepository(),
		time.Duration(cfg.Jobs.ExpireIntervalMinutes)*time.Minute,
	)
	jobWorker.Start(ctx)

	limiter, closeLimiter := initializeLimiter(ctx, cfg)
	defer closeLimiter()
	ginRouter := SetupRouter(cfg, gormDB, storageInstance, provider, dispatcher, limiter)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры и gin.Engine. Используется и в тестах.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage, provider email.Provider, dispatcher workers.Dispatcher, limiter middleware.Limiter) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, tokens, storageInstance, provider, dispatcher)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Регистрация маршрутов
	guards := middleware.NewGuards(tokens, serviceContainer.AuthService).
		WithRateLimit(limiter, cfg.RateLimit.AuthAttempts, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	routes.RegisterRoutes(ginRouter, appHandlers, guards)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	tokens *auth.TokenManager,
	storageInstance storage.Storage,
	provider email.Provider,
	dispatcher workers.Dispatcher,
) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	companyRepo := repositories.NewCompanyRepository()
	seekerRepo := repositories.NewJobSeekerRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	savedJobRepo := repositories.NewSavedJobRepository()
	notificationRepo := repositories.NewNotificationRepository()

	// --- Инициализация сервисов ---
	fileService := services.NewFileService(storageInstance)
	images := imageprocessor.NewProcessor(85)

	authService := services.NewAuthService(
		userRepo, companyRepo, seekerRepo, refreshTokenRepo,
		tokens, time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour, fileService,
	)
	companyService := services.NewCompanyService(companyRepo, jobRepo, applicationRepo, fileService, images, cfg.Upload.MaxLogoSize)
	jobService := services.NewJobService(jobRepo, applicationRepo, savedJobRepo, cfg.Jobs.FeaturedCount)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, notificationRepo, fileService, dispatcher)
	savedJobService := services.NewSavedJobService(savedJobRepo, jobRepo)
	seekerService := services.NewSeekerService(seekerRepo, fileService, cfg.Upload.MaxResumeSize)
	notificationService := services.NewNotificationService(notificationRepo)
	adminService := services.NewAdminService(
		userRepo, companyRepo, jobRepo, applicationRepo, seekerRepo, notificationRepo, refreshTokenRepo,
		fileService, dispatcher,
	)

	return &services.ServiceContainer{
		AuthService:         authService,
		CompanyService:      companyService,
		JobService:          jobService,
		ApplicationService:  applicationService,
		SavedJobService:     savedJobService,
		SeekerService:       seekerService,
		NotificationService: notificationService,
		AdminService:        adminService,
		FileService:         fileService,
		EmailProvider:       provider,
		Dispatcher:          dispatcher,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		JobHandler:          handlers.NewJobHandler(baseHandler, services.JobService, services.ApplicationService, services.SavedJobService, cfg.Jobs.PageSize),
		SeekerHandler:       handlers.NewSeekerHandler(baseHandler, services.SeekerService, services.ApplicationService, services.SavedJobService),
		CompanyHandler:      handlers.NewCompanyHandler(baseHandler, services.CompanyService, services.JobService, services.ApplicationService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.AdminService, services.JobService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		FileHandler:         handlers.NewFileHandler(baseHandler, services.FileService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	// Лимит multipart в памяти, остальное gin сбрасывает во временные файлы
	router.MaxMultipartMemory = 8 << 20
	return router
}

// NewEmailProvider - SMTP при email.enabled, иначе письма только пишутся в лог
func NewEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	if !cfg.Email.Enabled {
		logger.Warn("Email sending is disabled, messages will be logged only")
		return email.NewLogProvider(templates), nil
	}

	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS

	return email.NewSMTPProvider(smtpCfg, templates)
}

// initializeLimiter - Redis при rate_limit.redis_url, иначе счётчики в памяти процесса
func initializeLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func()) {
	if !cfg.RateLimit.Enabled {
		logger.Warn("Rate limiting is disabled")
		return nil, func() {}
	}
	if cfg.RateLimit.RedisURL == "" {
		logger.Info("Rate limiter in-memory", "attempts", cfg.RateLimit.AuthAttempts)
		return middleware.NewMemoryLimiter(), func() {}
	}

	client, err := middleware.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory rate limiter", "error", err)
		return middleware.NewMemoryLimiter(), func() {}
	}
	logger.Info("Rate limiter via Redis", "attempts", cfg.RateLimit.AuthAttempts)
	return middleware.NewRedisLimiter(client), func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close redis client", "error", err)
		}
	}
}

func newDispatcher(cfg *config.Config, provider email.Provider) (workers.Dispatcher, error) {
	switch cfg.Dispatch.Type {
	case "amqp":
		logger.Info("Email dispatch via AMQP", "queue", cfg.Dispatch.Queue)
		return workers.NewAMQPDispatcher(cfg.Dispatch.AMQPURL, cfg.Dispatch.Queue)
	case "", "inprocess":
		logger.Info("Email dispatch in-process", "workers", cfg.Dispatch.Workers)
		return workers.NewPoolDispatcher(provider, cfg.Dispatch.Workers, cfg.Dispatch.Buffer), nil
	default:
		return nil, fmt.Errorf("unsupported dispatch type: %s", cfg.Dispatch.Type)
	}
}

// seedFirstAdmin создаёт администратора из конфигурации, если пользователя с таким именем ещё нет
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	username := cfg.FirstAdmin.Username
	password := cfg.FirstAdmin.Password

	if username == "" || password == "" {
		logger.Warn("FIRST_ADMIN_USERNAME or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	exists, err := userRepo.UsernameExists(db, username)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if exists {
		logger.Info("Admin user already exists. Skipping creation.", "username", username)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     username,
		Email:        cfg.FirstAdmin.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "username", username)
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"convenio-backend/config"
	deliveryHttp "convenio-backend/internal/delivery/http"
	"convenio-backend/internal/delivery/http/handler"
	"convenio-backend/internal/delivery/http/middleware"
	"convenio-backend/internal/infrastructure/cache"
	"convenio-backend/internal/infrastructure/database"
	"convenio-backend/internal/repository"
	"convenio-backend/internal/service"
	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/jwt"
	"convenio-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsPath = "migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Sweeper     *service.SubscriptionSweeper
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply database migrations
	if err := database.RunMigrations(cfg.DB, migrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, sweeper := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Sweeper = sweeper

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SubscriptionSweeper) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	memberRepo := repository.NewMemberRepository()
	dependentRepo := repository.NewDependentRepository()
	professionalRepo := repository.NewProfessionalRepository()
	affiliateRepo := repository.NewAffiliateRepository()
	referralRepo := repository.NewReferralRepository()
	commissionRepo := repository.NewCommissionRepository()
	couponRepo := repository.NewCouponRepository()
	paymentRepo := repository.NewSubscriptionPaymentRepository()
	serviceRepo := repository.NewServiceRepository()
	locationRepo := repository.NewAttendanceLocationRepository()
	privatePatientRepo := repository.NewPrivatePatientRepository()
	consultationRepo := repository.NewConsultationRepository()
	schedulingAccessRepo := repository.NewSchedulingAccessRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	settler := usecase.NewConversionSettler(log, affiliateRepo, referralRepo, commissionRepo)

	// Initialize usecases
	affiliateUsecase := usecase.NewAffiliateUsecase(db, log, redisClient, userRepo, roleRepo, affiliateRepo, referralRepo, commissionRepo, auditService)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, memberRepo, affiliateUsecase, jwtService, redisClient)
	memberUsecase := usecase.NewMemberUsecase(db, log, memberRepo, dependentRepo, auditService)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(db, log, memberRepo, dependentRepo, settler, auditService)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, cfg.Plan, memberRepo, dependentRepo, couponRepo, paymentRepo, settler, auditService)
	couponUsecase := usecase.NewCouponUsecase(db, log, cfg.Plan, couponRepo, auditService)
	commissionUsecase := usecase.NewCommissionUsecase(db, log, commissionRepo, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, userRepo, roleRepo, professionalRepo, auditService)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, auditService)
	locationUsecase := usecase.NewLocationUsecase(db, log, locationRepo, privatePatientRepo, professionalRepo, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRepo, professionalRepo, serviceRepo, locationRepo, memberRepo, dependentRepo, privatePatientRepo, auditService)
	schedulingAccessUsecase := usecase.NewSchedulingAccessUsecase(db, log, schedulingAccessRepo, professionalRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	memberHandler := handler.NewMemberHandler(memberUsecase, customValidator)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionUsecase, paymentUsecase, customValidator)
	couponHandler := handler.NewCouponHandler(couponUsecase, customValidator)
	affiliateHandler := handler.NewAffiliateHandler(affiliateUsecase, commissionUsecase, customValidator)
	commissionHandler := handler.NewCommissionHandler(commissionUsecase)
	professionalHandler := handler.NewProfessionalHandler(professionalUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	locationHandler := handler.NewLocationHandler(locationUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	schedulingAccessHandler := handler.NewSchedulingAccessHandler(schedulingAccessUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		memberHandler,
		subscriptionHandler,
		couponHandler,
		affiliateHandler,
		commissionHandler,
		professionalHandler,
		serviceHandler,
		locationHandler,
		consultationHandler,
		schedulingAccessHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Background subscription expiry sweeper
	sweeper := service.NewSubscriptionSweeper(subscriptionUsecase, log, cfg.Plan.SweepInterval)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, sweeper
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Sweeper.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Sweeper.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

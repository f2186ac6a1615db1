package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	domainerr "github.com/cloudai/owner-console/internal/domain/error"
	adUseCase "github.com/cloudai/owner-console/internal/domain/usecase/ad"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
	deletionUseCase "github.com/cloudai/owner-console/internal/domain/usecase/deletion"
	resourceUseCase "github.com/cloudai/owner-console/internal/domain/usecase/resource"
	saleUseCase "github.com/cloudai/owner-console/internal/domain/usecase/sale"
	serviceUseCase "github.com/cloudai/owner-console/internal/domain/usecase/service"
	settingsUseCase "github.com/cloudai/owner-console/internal/domain/usecase/settings"
	slotUseCase "github.com/cloudai/owner-console/internal/domain/usecase/slot"
	transactionUseCase "github.com/cloudai/owner-console/internal/domain/usecase/transaction"
	userUseCase "github.com/cloudai/owner-console/internal/domain/usecase/user"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/handler"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/routes"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/database"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/identity"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/objectstore"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/repository"
	timeProvider "github.com/cloudai/owner-console/internal/infrastructure/adapter/time"
	"github.com/cloudai/owner-console/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)

	// Setup database configuration
	dbConfig := database.CreateConfigFromViperConfig(cfg)

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	db := dbManager.DB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, tp, appLogger)
	serviceRepo := repository.NewServiceRepository(db, appLogger)
	eventRepo := repository.NewServiceEventRepository(db, appLogger)
	saleRepo := repository.NewSaleItemRepository(db, appLogger)
	adRepo := repository.NewAdRepository(db, appLogger)
	resourceRepo := repository.NewResourceRepository(db, appLogger)
	transactionRepo := repository.NewTransactionRepository(db, appLogger)
	slotRepo := repository.NewSlotRequestRepository(db, appLogger)
	deletionRepo := repository.NewDeletionRequestRepository(db, appLogger)
	settingsRepo := repository.NewSettingsRepository(db, tp, appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(db, appLogger, tp)

	// Identity directory and token verification
	verifier := identity.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, appLogger)
	directory := identity.NewAccountDirectory(db, cfg.Auth.JWTSecret, cfg.Auth.VerificationLinkBaseURL, tp, appLogger)

	// Object store for student bank downloads
	objectStore, err := objectstore.NewS3Store(context.Background(), objectstore.Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		PublicEndpoint:  cfg.Storage.PublicEndpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		ForcePathStyle:  cfg.Storage.ForcePathStyle,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize object store", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Lock cascade engine
	committer := repository.NewChunkCommitter(db, appLogger)
	writer := cascade.NewBatchWriter(committer, cfg.Cascade.BatchLimit, appLogger)
	engine := cascade.NewEngine(serviceRepo, writer, tp, appLogger, cfg.Cascade.QueryLimit)

	// Initialize use cases
	settingsUC := settingsUseCase.NewSettingsUseCase(settingsRepo, serviceRepo, engine, appLogger)
	userUC := userUseCase.NewUserUseCase(userRepo, directory, engine, tp, appLogger)
	serviceUC := serviceUseCase.NewServiceUseCase(serviceRepo, userRepo, eventRepo, directory, writer, tp, appLogger)
	saleUC := saleUseCase.NewSaleUseCase(saleRepo, userRepo, tp, appLogger)
	adUC := adUseCase.NewAdUseCase(adRepo, tp, appLogger)
	resourceUC := resourceUseCase.NewResourceUseCase(resourceRepo, settingsRepo, objectStore, tp, appLogger)
	transactionUC := transactionUseCase.NewTransactionUseCase(transactionRepo, userRepo, uow, engine, tp, appLogger)
	deletionUC := deletionUseCase.NewDeletionUseCase(deletionRepo, serviceRepo, tp, appLogger)
	slotUC := slotUseCase.NewSlotUseCase(slotRepo, tp, appLogger)

	// Create the bootstrap owner account when configured
	bootstrapOwner(context.Background(), userUC, appLogger)

	// Initialize API handlers
	handlers := routes.Handlers{
		Settings:    handler.NewSettingsHandler(settingsUC, appLogger),
		Users:       handler.NewUserHandler(userUC, appLogger),
		Services:    handler.NewServiceHandler(serviceUC, appLogger),
		Sales:       handler.NewSaleHandler(saleUC, appLogger),
		Ads:         handler.NewAdHandler(adUC, appLogger),
		Resources:   handler.NewResourceHandler(resourceUC, appLogger),
		Transaction: handler.NewTransactionHandler(transactionUC, appLogger),
		Slots:       handler.NewSlotHandler(slotUC, appLogger),
		Deletions:   handler.NewDeletionHandler(deletionUC, appLogger),
		Debug:       handler.NewDebugHandler(verifier, appLogger),
	}

	auth := middleware.NewAuthenticator(verifier, userRepo, appLogger)
	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, metrics)

	// Setup routes
	routes.SetupRoutes(router, auth, dbManager, handlers)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// bootstrapOwner creates the initial owner account from the environment so a
// fresh deployment has a console login. Skipped when the variables are unset
// or the account already exists.
func bootstrapOwner(ctx context.Context, users *userUseCase.UserUseCase, appLogger coreport.Logger) {
	email := os.Getenv("OC_BOOTSTRAP_OWNER_EMAIL")
	password := os.Getenv("OC_BOOTSTRAP_OWNER_PASSWORD")
	if email == "" || password == "" {
		return
	}

	_, err := users.Create(ctx, userUseCase.CreateUserInput{
		Email:    email,
		Password: password,
		Role:     "owner",
		Status:   "active",
	})
	if err != nil {
		if errors.Is(err, domainerr.ErrDuplicateAccount) {
			appLogger.Debug("Bootstrap owner account already exists", map[string]any{"email": email})
			return
		}
		appLogger.Error("Failed to create bootstrap owner account", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return
	}
	appLogger.Info("Bootstrap owner account created", map[string]any{"email": email})
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("OC_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or OC_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}

	if cfg.Database.Port == "" {
		if cfg.Environment == config.Production && os.Getenv("OC_DB_PORT") == "" {
			missingConfigs = append(missingConfigs, "database.port (or OC_DB_PORT environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.port")
		}
	}

	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database")
	}

	// Validate auth configuration
	if cfg.Auth.JWTSecret == "" {
		if cfg.Environment == config.Production && os.Getenv("OC_AUTH_JWT_SECRET") == "" {
			missingConfigs = append(missingConfigs, "auth.jwtSecret (or OC_AUTH_JWT_SECRET environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "auth.jwtSecret")
		}
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}

	return nil
}

// Package bootstrap wires configuration, storage and HTTP handling
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/controllers"
	appRepos "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/repositories"
	appRoutes "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/routes"
	appServices "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/services"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/config"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/db"
	appMiddleware "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
	pkgAuth "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/auth"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/logger"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	ItemService       appServices.ItemService
	MessageService    appServices.MessageService
	AuthController    *appControllers.AuthController
	ItemController    *appControllers.ItemController
	MessageController *appControllers.MessageController
	UserController    *appControllers.UserController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	AuthLimiter       *appMiddleware.LimiterStore
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to MongoDB, ensures indexes and plants the
// default records.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Client, error) {
	lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := db.New(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := client.CreateIndexes(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to create indexes")
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = client.Close(closeCtx)
		return nil, fmt.Errorf("creating indexes: %w", err)
	}

	repos := appRepos.NewRepositories(client)
	if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
		// Seeding problems are logged but never block startup.
		lgr.Warn().Err(err).Msg("Default data seeding reported errors")
	}

	return client, nil
}

// BuildDependencies constructs repositories, services, controllers and
// middleware over the database client.
func BuildDependencies(cfg *config.Config, client *db.Client, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(client)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.TokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	services := appServices.NewServices(repos, jwtService)

	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService)
	authLimiter := appMiddleware.NewLimiterStore(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst, 5*time.Minute)

	deps := &Dependencies{
		AuthService:       services.AuthService,
		ItemService:       services.ItemService,
		MessageService:    services.MessageService,
		AuthController:    appControllers.NewAuthController(services.AuthService, lgr.With().Str("controller", "auth").Logger()),
		ItemController:    appControllers.NewItemController(services.ItemService, lgr.With().Str("controller", "item").Logger()),
		MessageController: appControllers.NewMessageController(services.MessageService, lgr.With().Str("controller", "message").Logger()),
		UserController:    appControllers.NewUserController(services.AuthService, lgr.With().Str("controller", "user").Logger()),
		AuthMiddleware:    authMiddleware,
		AuthLimiter:       authLimiter,
		Repos:             repos,
		JWTService:        jwtService,
		Logger:            lgr,
	}

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.ItemController,
		deps.MessageController,
		deps.UserController,
		deps.AuthMiddleware,
		deps.AuthLimiter,
	)

	lgr.Info().Msg("Router configured")
	return router
}

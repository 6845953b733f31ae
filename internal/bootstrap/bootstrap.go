package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	appControllers "github.com/yigit/eduadmin/internal/app/controllers"
	appMigrations "github.com/yigit/eduadmin/internal/app/migrations"
	appRepos "github.com/yigit/eduadmin/internal/app/repositories"
	userRepos "github.com/yigit/eduadmin/internal/app/repositories/user"
	appRoutes "github.com/yigit/eduadmin/internal/app/routes"
	appServices "github.com/yigit/eduadmin/internal/app/services"
	"github.com/yigit/eduadmin/internal/config"
	"github.com/yigit/eduadmin/internal/db"
	appMiddleware "github.com/yigit/eduadmin/internal/middleware"
	pkgAuth "github.com/yigit/eduadmin/internal/pkg/auth"
	"github.com/yigit/eduadmin/internal/pkg/filestorage"
	"github.com/yigit/eduadmin/internal/pkg/logger"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
	"github.com/yigit/eduadmin/internal/pkg/metrics"
	"github.com/yigit/eduadmin/internal/pkg/validation"
	"github.com/yigit/eduadmin/internal/seed"
)

// TokenCleanupInterval is how often expired refresh tokens are purged
const TokenCleanupInterval = time.Hour

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Publisher      messaging.Publisher
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the configuration file and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file loaded, using process environment")
	}

	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTelemetry installs the meter provider (when an OTLP endpoint is set)
// and creates the collectors. The returned provider may be nil.
func SetupTelemetry(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*sdkmetric.MeterProvider, *metrics.Metrics, error) {
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = "eduadmin"
	}

	provider, err := metrics.InitMeterProvider(ctx, serviceName, cfg.Telemetry.OTLPEndpoint, lgr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}

	m, err := metrics.New(serviceName)
	if err != nil {
		return provider, nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	return provider, m, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the super admin.
func SetupDatabase(ctx context.Context, cfg *config.Config, m *metrics.Metrics, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg, lgr, m.Database)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := m.Database.RegisterPool(database.Pool, m.Meter()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to register pool metrics")
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, cfg, userRepos.NewAdminRepository(database), lgr); err != nil {
		// The API still starts; existing admins can keep working.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupPublisher connects to NATS, or returns a no-op publisher when no URL is configured.
func SetupPublisher(cfg *config.Config, m *metrics.Metrics, lgr zerolog.Logger) messaging.Publisher {
	if cfg.NATS.URL == "" {
		lgr.Info().Msg("NATS URL not configured, domain events are disabled")
		return messaging.NoopPublisher{}
	}

	producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.SubjectPrefix, m.Messaging, lgr)
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to connect to NATS, domain events are disabled")
		return messaging.NoopPublisher{}
	}
	return producer
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, publisher messaging.Publisher, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Publisher: publisher}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicBaseURL())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		AccessSecret:    cfg.JWT.AccessSecret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	repos := deps.Repos
	imageService := appServices.NewImageService(repos.ImageRepository, deps.FileStorage, cfg.Server.MaxUploadBytes, lgr)

	deps.Services = &appServices.Services{
		Auth: appServices.NewAuthService(
			repos.AdminRepository,
			repos.TeacherRepository,
			repos.StudentRepository,
			repos.TokenRepository,
			deps.JWTService,
			lgr,
		),
		Image:    imageService,
		Admin:    appServices.NewAdminService(repos.AdminRepository, repos.TokenRepository, imageService, publisher, lgr),
		Teacher:  appServices.NewTeacherService(repos.TeacherRepository, repos.TokenRepository, imageService, publisher, lgr),
		Student:  appServices.NewStudentService(repos.StudentRepository, repos.GroupRepository, repos.TokenRepository, imageService, publisher, lgr),
		Group:    appServices.NewGroupService(repos.GroupRepository, repos.StudentRepository, lgr),
		Subject:  appServices.NewSubjectService(repos.SubjectRepository, lgr),
		Test:     appServices.NewTestService(repos.TestRepository, lgr),
		Question: appServices.NewQuestionService(repos.QuestionRepository, repos.TestRepository, lgr),
		Answer:   appServices.NewAnswerService(repos.AnswerRepository, repos.QuestionRepository, repos.TestRepository, lgr),
		Result:   appServices.NewResultService(repos.ResultRepository, repos.TestRepository, repos.QuestionRepository, publisher, lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(svc.Auth, lgr),
		Admin:    appControllers.NewAdminController(svc.Admin),
		Teacher:  appControllers.NewTeacherController(svc.Teacher),
		Student:  appControllers.NewStudentController(svc.Student),
		Group:    appControllers.NewGroupController(svc.Group),
		Subject:  appControllers.NewSubjectController(svc.Subject),
		Test:     appControllers.NewTestController(svc.Test),
		Question: appControllers.NewQuestionController(svc.Question),
		Answer:   appControllers.NewAnswerController(svc.Answer),
		Result:   appControllers.NewResultController(svc.Result),
		Image:    appControllers.NewImageController(svc.Image),
		Health:   appControllers.NewHealthController(database, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, m *metrics.Metrics) *gin.Engine {
	lgr := deps.Logger
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	if err := validation.RegisterBindingRules(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validation rules")
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(m.HTTP),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, cfg.Server.StoragePath)
	return router
}

// TokenCleaner deletes refresh tokens that can no longer be used
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// StartTokenCleanup purges expired and revoked refresh tokens every interval until ctx is done.
func StartTokenCleanup(ctx context.Context, cleaner TokenCleaner, interval time.Duration, lgr zerolog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := cleaner.CleanupExpiredTokens(ctx)
				if err != nil {
					lgr.Error().Err(err).Msg("Failed to clean up expired refresh tokens")
					continue
				}
				if removed > 0 {
					lgr.Info().Int64("removed", removed).Msg("Expired refresh tokens cleaned up")
				}
			}
		}
	}()
}

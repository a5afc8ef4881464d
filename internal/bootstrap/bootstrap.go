package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edupoint/sis-backend/docs" // Import generated swagger docs
	appControllers "github.com/edupoint/sis-backend/internal/app/controllers"
	appMigrations "github.com/edupoint/sis-backend/internal/app/migrations"
	appRepos "github.com/edupoint/sis-backend/internal/app/repositories"
	appRoutes "github.com/edupoint/sis-backend/internal/app/routes"
	appServices "github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/config"
	"github.com/edupoint/sis-backend/internal/db"
	appMiddleware "github.com/edupoint/sis-backend/internal/middleware"
	pkgAuth "github.com/edupoint/sis-backend/internal/pkg/auth"
	"github.com/edupoint/sis-backend/internal/pkg/helpers"
	"github.com/edupoint/sis-backend/internal/pkg/logger"
	"github.com/edupoint/sis-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	UserService          *appServices.UserService
	DepartmentService    *appServices.DepartmentService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	AttendanceService    *appServices.AttendanceService
	RecordService        *appServices.RecordService
	DashboardService     *appServices.DashboardService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	DepartmentController *appControllers.DepartmentController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	AttendanceController *appControllers.AttendanceController
	RecordController     *appControllers.RecordController
	DashboardController  *appControllers.DashboardController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed failures are logged but do not block startup.
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Expired refresh tokens accumulate between restarts; purge them now.
	if purged, err := deps.Repos.TokenRepository.DeleteExpiredTokens(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	} else if purged > 0 {
		lgr.Info().Int64("count", purged).Msg("Purged expired refresh tokens")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.TokenRepository,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.UserRepository,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
	)
	deps.RecordService = appServices.NewRecordService(
		deps.Repos.GradeRepository,
		deps.Repos.RecordRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.GradeRepository,
		deps.Repos.RecordRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService, deps.EnrollmentService)
	deps.RecordController = appControllers.NewRecordController(deps.RecordService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.DepartmentController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AttendanceController,
		deps.RecordController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	lgr.Info().Msg("Router configured.")
	return router
}

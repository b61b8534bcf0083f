package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/config"
	"github.com/lshigami/schooltest/database"
	_ "github.com/lshigami/schooltest/docs" // Swagger docs
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/cache"
	adminctrl "github.com/lshigami/schooltest/internal/controller/admin"
	userctrl "github.com/lshigami/schooltest/internal/controller/user"
	"github.com/lshigami/schooltest/internal/logger"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/lshigami/schooltest/internal/router"
	"github.com/lshigami/schooltest/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title School Test Retest API
// @version 1.0
// @description Retest assignments, attempt tracking and best-attempt projection for school tests.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			router.NewGinEngine,
			auth.NewAuthService,
			cache.NewBestAttemptCache,
			func() service.Clock { return service.SystemClock },
		),

		// Repositories
		fx.Provide(
			repository.NewTestRepository,
			repository.NewRetestAssignmentRepository,
			repository.NewRetestTargetRepository,
			repository.NewAttemptRepository,
			repository.NewBestAttemptRepository,
			func(db *gorm.DB, cfg *config.Config) (repository.TestResultStores, error) {
				return repository.NewTestResultStores(db, cfg.ResultTables)
			},
		),

		// Services
		fx.Provide(
			service.NewScoreConverterService,
			service.NewAttemptRecorder,
			service.NewBestAttemptService,
			service.NewRetestAssignmentService,
			service.NewSubmissionService,
			service.NewAdminTestService,
			service.NewUserTestService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminTestController,
			adminctrl.NewRetestController,
			userctrl.NewUserTestController,
			userctrl.NewSubmissionController,
		),

		fx.Invoke(InitLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func InitLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

func AutoMigrateDB(db *gorm.DB, cfg *config.Config) error {
	return database.AutoMigrate(db, cfg.ResultTables)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.AuthService,
	adminTestCtrl *adminctrl.AdminTestController,
	retestCtrl *adminctrl.RetestController,
	userTestCtrl *userctrl.UserTestController,
	submissionCtrl *userctrl.SubmissionController,
) {
	router.Register(engine, authService, router.Controllers{
		AdminTest:  adminTestCtrl,
		Retest:     retestCtrl,
		UserTest:   userTestCtrl,
		Submission: submissionCtrl,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Retest API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

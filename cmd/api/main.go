package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/justiceconnect/internal/api/http"
	"github.com/spec-kit/justiceconnect/internal/api/http/handlers"
	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/events"
	"github.com/spec-kit/justiceconnect/internal/observability"
	"github.com/spec-kit/justiceconnect/internal/persistence"
	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/internal/service"
	"github.com/spec-kit/justiceconnect/internal/storage"
	"github.com/spec-kit/justiceconnect/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	identityRepo := repository.NewIdentityRepository(pool)
	lawyerRepo := repository.NewLawyerRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	attachmentRepo := repository.NewCaseAttachmentRepository(pool)
	historyRepo := repository.NewCaseHistoryRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	var sessionStore auth.SessionStore
	switch strings.ToLower(cfg.Session.Backend) {
	case "memory":
		sessionStore = auth.NewMemorySessionStore()
		logger.Warn("using in-memory session store; sessions do not survive restarts")
	default:
		sessionStore = auth.NewRedisSessionStore(redis.Client)
	}

	dispatcher := events.NewInMemoryDispatcher()
	downloadTokens := auth.NewDownloadTokenManager(cfg.Auth.DownloadTokenSecret, cfg.Auth.DownloadTokenTTLMinutes)

	authService := service.NewAuthService(identityRepo, lawyerRepo, resetRepo, sessionStore, cfg.Auth, cfg.Session, logger)
	intakeService := service.NewIntakeService(caseRepo, attachmentRepo, fileStore, dispatcher, cfg.Upload, logger)
	assignmentService := service.NewAssignmentService(caseRepo, attachmentRepo, lawyerRepo, historyRepo, dispatcher, logger)
	metricsService := service.NewMetricsService(caseRepo, lawyerRepo)
	rosterService := service.NewRosterService(lawyerRepo, logger)
	notificationService := service.NewNotificationService(cfg.Notification, logger)

	worker.StartNotificationWorker(dispatcher, notificationService)

	authMiddleware := auth.NewAuthMiddleware(sessionStore, cfg.Session.CookieName)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		BodyLimit:   int(cfg.Upload.MaxCombinedBytes()) + 1<<20,
		ReadTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService, cfg.Session),
		Profile:        handlers.NewProfileHandler(authService),
		Cases:          handlers.NewCasesHandler(intakeService, downloadTokens),
		Files:          handlers.NewFilesHandler(intakeService, downloadTokens),
		AdminCases:     handlers.NewAdminCasesHandler(assignmentService),
		Lawyers:        handlers.NewLawyersHandler(rosterService),
		Metrics:        handlers.NewMetricsHandler(metricsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

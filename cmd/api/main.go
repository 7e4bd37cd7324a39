package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lead-intake-service/internal/api/http"
	"github.com/spec-kit/lead-intake-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-intake-service/internal/auth"
	"github.com/spec-kit/lead-intake-service/internal/config"
	"github.com/spec-kit/lead-intake-service/internal/events"
	"github.com/spec-kit/lead-intake-service/internal/mail"
	"github.com/spec-kit/lead-intake-service/internal/observability"
	"github.com/spec-kit/lead-intake-service/internal/persistence"
	"github.com/spec-kit/lead-intake-service/internal/repository"
	"github.com/spec-kit/lead-intake-service/internal/service"
	"github.com/spec-kit/lead-intake-service/internal/storage"
	"github.com/spec-kit/lead-intake-service/internal/worker"
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

	docStore, err := storage.NewDocumentStore(cfg.Storage.UploadDir, logger)
	if err != nil {
		logger.Fatal("failed to init document store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	txManager := repository.NewTxManager(pool)
	leadRepo := repository.NewLeadRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	gateway := mail.NewGateway(cfg.Mail, logger)

	assignmentService := service.NewAssignmentService(userRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, gateway, cfg.Mail.SendTimeout(), logger)
	intakeService := service.NewIntakeService(service.IntakeDependencies{
		TxManager:     txManager,
		LeadRepo:      leadRepo,
		DocumentRepo:  documentRepo,
		DocumentStore: docStore,
		Assignment:    assignmentService,
		Notifications: notificationService,
		Dispatcher:    dispatcher,
	}, logger)
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:      leadRepo,
		DocumentRepo:  documentRepo,
		DocumentStore: docStore,
		Cache:         redis.Client,
		Dispatcher:    dispatcher,
	}, logger)
	authService := service.NewAuthService(*cfg, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	worker.StartNotificationWorker(service.NewEventNotifier(dispatcher, logger, cfg.Mail))

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		PublicLeads:    handlers.NewPublicLeadsHandler(intakeService),
		Auth:           handlers.NewAuthHandler(authService),
		Leads:          handlers.NewLeadsHandler(leadService),
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

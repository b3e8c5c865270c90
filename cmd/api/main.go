package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tickety/tickety-server/internal/api/http"
	"github.com/tickety/tickety-server/internal/api/http/handlers"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/config"
	"github.com/tickety/tickety-server/internal/events"
	"github.com/tickety/tickety-server/internal/notify"
	"github.com/tickety/tickety-server/internal/observability"
	"github.com/tickety/tickety-server/internal/persistence"
	"github.com/tickety/tickety-server/internal/repository"
	"github.com/tickety/tickety-server/internal/service"
	"github.com/tickety/tickety-server/internal/storage"
	"github.com/tickety/tickety-server/internal/worker"
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

	store, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	assigneeRepo := repository.NewAssigneeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := notify.NewMailer(cfg.Notification, logger)
	messenger := notify.NewMessenger(cfg.Notification, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CustomerRepo:      customerRepo,
		AssigneeRepo:      assigneeRepo,
		PasswordResetRepo: resetRepo,
		Mailer:            mailer,
		Logger:            logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		CustomerRepo: customerRepo,
		AssigneeRepo: assigneeRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		TicketRepo:     ticketRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
	})
	dashboardService := service.NewDashboardService(dashboardRepo)
	notificationService := service.NewNotificationService(dispatcher, messenger, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), customerRepo, assigneeRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Customers:      handlers.NewCustomersHandler(authService, customerRepo),
		Assignees:      handlers.NewAssigneesHandler(authService, assigneeRepo),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Attachments:    handlers.NewAttachmentsHandler(commentService, store),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
		UploadDir:      store.Dir(),
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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/qmdesk/complaint-service/internal/api/http"
	"github.com/qmdesk/complaint-service/internal/api/http/handlers"
	"github.com/qmdesk/complaint-service/internal/auth"
	"github.com/qmdesk/complaint-service/internal/config"
	"github.com/qmdesk/complaint-service/internal/events"
	"github.com/qmdesk/complaint-service/internal/observability"
	"github.com/qmdesk/complaint-service/internal/pdfreport"
	"github.com/qmdesk/complaint-service/internal/persistence"
	"github.com/qmdesk/complaint-service/internal/repository"
	"github.com/qmdesk/complaint-service/internal/service"
	"github.com/qmdesk/complaint-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	rd := persistence.NewRedis(cfg.Redis, logger)
	defer rd.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	roleRepo := repository.NewLookupRepository(pool, repository.TableRoles)

	authSvc := service.NewAuthService(cfg.Auth, userRepo, resetRepo, logger)
	userSvc := service.NewUserService(userRepo, roleRepo, dispatcher, logger, cfg.Auth.BcryptCost)
	complaintSvc := service.NewComplaintService(complaintRepo, dispatcher, logger)

	renderer := pdfreport.NewRenderer(cfg.Report)
	reportSvc := service.NewReportService(reportRepo, rd.ClientHandle(), cfg.Dashboard.CacheTTL(), renderer, metrics, logger)
	reportSvc.RegisterInvalidation(dispatcher)

	notifySvc := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifySvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpapi.NewErrorHandler(logger, metrics),
	})
	httpapi.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	authMW := auth.NewAuthMiddleware(authSvc.TokenManager(), userRepo)
	httpapi.RegisterRoutes(app, httpapi.Handlers{
		Health:     handlers.NewHealthHandler(pg, rd, metrics, cfg.App.Version),
		Auth:       handlers.NewAuthHandler(authSvc),
		Users:      handlers.NewUserHandler(userSvc),
		Complaints: handlers.NewComplaintHandler(complaintSvc),
		Dashboard:  handlers.NewDashboardHandler(reportSvc, complaintSvc),
		Reports:    handlers.NewReportHandler(reportSvc),
		Lookups:    handlers.NewLookupHandler(pool),
		AuthMW:     authMW,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
	)

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

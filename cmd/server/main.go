package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessongate/lessongate/internal/app"
	"github.com/lessongate/lessongate/internal/config"
	"github.com/lessongate/lessongate/internal/controller"
	"github.com/lessongate/lessongate/internal/notify"
	"github.com/lessongate/lessongate/internal/repository"
	"github.com/lessongate/lessongate/internal/service"
	"github.com/lessongate/lessongate/internal/session"
	sig "github.com/lessongate/lessongate/internal/signal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting lessongate server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Duration("signal_debounce", cfg.SignalDebounce),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, "migrations")
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Repositories
	subjectRepo := repository.NewSubjectRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	accessRepo := repository.NewAccessRepository(pool)
	requestRepo := repository.NewAccessRequestRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Optional Telegram push channel for decisions.
	var pusher service.Pusher
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		pusher = telegram
		logger.Info("Telegram push channel enabled")
	}

	bus := sig.NewBus()

	catalogService := service.NewCatalogService(subjectRepo, lessonRepo, videoRepo, logger)
	requestService := service.NewRequestService(
		requestRepo, accessRepo, lessonRepo, notificationRepo, userRepo, bus, pusher, logger,
	)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	snapshotSource := service.NewSnapshotSource(accessRepo, requestRepo)
	sessions := session.NewRegistry(ctx, snapshotSource, catalogService, bus, session.Config{
		PollInterval:   cfg.PollInterval,
		SignalDebounce: cfg.SignalDebounce,
	}, logger)

	janitor := app.NewJanitor(requestRepo, notificationRepo, logger)
	janitor.Start(ctx)

	server := controller.NewServer(
		cfg, sessions, requestService, notificationService, subjectRepo, userRepo, logger,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Listen(cfg.HTTPAddr)
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	case s := <-stopChan:
		logger.Info("Shutting down", zap.String("signal", s.String()))
	}

	if err := server.Shutdown(); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	sessions.CloseAll()
	janitor.Stop()
	cancel()

	logger.Info("Server stopped")
}

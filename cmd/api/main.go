package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	natsbroker "github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/eventbroker/nats"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/handlers/http/chi"
	order2 "github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/handlers/http/chi/v1/order"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/handlers/http/chi/v1/webhook"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/repository/postgres"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/storage/minio"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/cleanup"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/completion"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/migration"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/order"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/paymentevent"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//fulfilment events
	publisher, err := natsbroker.NewNATSPublisher(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close NATS publisher", "error", err)
		}
	}()
	notifier := natsbroker.NewFulfillmentNotifier(publisher, cfg.NATS)

	//repositories
	unitOfWork := postgres.NewUnitOfWork(db)

	//services
	orderService := order.NewOrderService(unitOfWork, minioAdapter, cfg.Upload)
	coordinator := migration.NewCoordinator(unitOfWork, minioAdapter, cfg.Migration, logger)
	completionService := completion.NewCompletionService(unitOfWork, coordinator, notifier, logger)
	paymentEventService := paymentevent.NewPaymentEventService(completionService, logger)
	cleanupService := cleanup.NewCleanupService(unitOfWork, minioAdapter, cfg.Migration, logger)

	//http
	orderHandler := order2.NewOrderHandlerV1(orderService, logger)
	webhookHandler := webhook.NewWebhookHandlerV1(paymentEventService, logger)

	router := chi.NewRouter(logger, orderHandler, webhookHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init retention sweeper
	wg.Add(1)
	go func() {
		defer wg.Done()
		initSweepTask(ctx, cleanupService, cfg.Migration.SweepEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initSweepTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("retention sweeper initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("retention sweep starting")
			err := service.CleanupExpiredTempFiles(ctx, time.Now())
			if err != nil {
				logger.Error("failed to sweep expired temp files", "error", err)
			} else {
				logger.Info("retention sweep completed successfully")
			}
		case <-ctx.Done():
			logger.Info("retention sweeper stopped")
			return
		}
	}

}

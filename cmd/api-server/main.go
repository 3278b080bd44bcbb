// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"corpsite-backend/internal/applications"
	"corpsite-backend/internal/common/aws"
	"corpsite-backend/internal/common/config"
	"corpsite-backend/internal/common/database"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/common/storage"
	"corpsite-backend/internal/formfields"
	"corpsite-backend/internal/inquiries"
	"corpsite-backend/internal/jobs"
	"corpsite-backend/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting API server...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry (only needed by the rate limiter) ---
	var redisClient *database.RedisClient
	if cfg.RateLimit.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init blob store with retry ---
	var blobs *storage.BlobStore
	err = retryWithBackoff(func() error {
		var err error
		blobs, err = storage.NewBlobStore(cfg.Storage)
		if err != nil {
			return err
		}
		return blobs.EnsureBucket(ctx)
	}, 10, 2*time.Second, zapLog, "Blob store initialization")

	if err != nil {
		zapLog.Fatal("blob store failed after retries", zap.Error(err))
	}
	zapLog.Info("Blob store ready", zap.String("bucket", cfg.Storage.Bucket))

	// --- Init SES client (optional) ---
	var emailSender inquiries.EmailSender
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		emailSender = sesClient
		zapLog.Info("SES client initialized", zap.String("region", cfg.Integrations.AWS.Region))
	}

	// --- Wire services ---
	formFieldSvc := formfields.NewService(pg.DB, log)
	applicationSvc := applications.NewService(pg.DB, blobs, applications.Config{
		ValidateSubmissions: cfg.Intake.ValidateSubmissions,
		StrictTransitions:   cfg.Pipeline.StrictTransitions,
	}, log)
	jobSvc := jobs.NewService(pg.DB, log)
	inquirySvc := inquiries.NewService(pg.DB, emailSender, inquiries.Config{
		EmailEnabled: cfg.Integrations.AWS.SES.Enabled,
		FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
		InboxEmail:   cfg.Integrations.AWS.SES.InboxEmail,
	}, log)

	handlers := server.Handlers{
		FormFields:   server.NewFormFieldHandler(formFieldSvc, log),
		Applications: server.NewApplicationHandler(applicationSvc, cfg.Intake.MaxUploadBytes, log),
		Jobs:         server.NewJobHandler(jobSvc, log),
		Inquiries:    server.NewInquiryHandler(inquirySvc, log),
	}

	var rawRedis *redis.Client
	if redisClient != nil {
		rawRedis = redisClient.Client
	}
	router := server.NewRouter(cfg, handlers, rawRedis, log)
	srv := server.New(cfg, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	zapLog.Info("API server stopped")
}

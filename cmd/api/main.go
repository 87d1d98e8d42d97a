package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/checkout"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/jobs"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const shutdownTimeout = 15 * time.Second

func main() {

	cfg := config.Load()
	l := logger.New(cfg.IsProduction(), cfg.LogLevel)
	defer func() { _ = l.Sync() }()

	timezone.SetDefault(cfg.Timezone)

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// REDIS (optional)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			l.Warn("redis unreachable, falling back to in-process limiter", zap.Error(err))
			_ = rdb.Close()
			rdb = nil
		}
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMin)
	if rdb != nil {
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMin, "ratelimit:")
	}

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	var mailer notification.Mailer = notification.NewLogMailer(l)
	if cfg.SMTPEnabled() {
		mailer = notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	}

	var (
		queue       notification.Queue
		closeQueue  func()
		asynqServer *asynq.Server
	)

	if cfg.NotifyBackend == "redis" && cfg.RedisEnabled() {
		opt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}

		aq := notification.NewAsynqQueue(opt, l)
		queue, closeQueue = aq, aq.Close

		srv, mux := notification.NewAsynqWorker(opt, mailer, l)
		if err := srv.Start(mux); err != nil {
			l.Fatal("failed to start email worker", zap.Error(err))
		}
		asynqServer = srv
	} else {
		mq := notification.NewMemoryQueue(mailer, l, 100)
		queue, closeQueue = mq, mq.Close
	}

	notifier := notification.NewNotifier(queue, l, cfg.FrontendURL, cfg.ShopName)

	// ======================================================
	// AUDIT
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// INTEGRATIONS (optional)
	// ======================================================
	deps := routes.Deps{
		DB:       db,
		Tokens:   auth.NewTokens(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenMinutes, cfg.RefreshTokenDays),
		Audit:    auditDispatcher,
		Notifier: notifier,
		Limiter:  limiter,
		Origins:  cfg.Origins(),
	}

	if cfg.StorageEnabled() {
		deps.Store = storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	} else {
		l.Info("object storage not configured, gallery uploads disabled")
	}

	if cfg.MercadoPagoToken != "" {
		mp, err := checkout.NewMercadoPago(cfg.MercadoPagoToken, cfg.FrontendURL)
		if err != nil {
			l.Error("mercadopago disabled", zap.Error(err))
		} else {
			deps.Checkout = mp
		}
	}

	// ======================================================
	// JOBS
	// ======================================================
	reminders := jobs.NewReminders(db, notifier, l)
	cronRunner, err := reminders.Start(cfg.ReminderCron)
	if err != nil {
		l.Fatal("invalid reminder schedule", zap.String("spec", cfg.ReminderCron), zap.Error(err))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.Requests(l))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// ======================================================
	// SHUTDOWN
	// ======================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error("server shutdown", zap.Error(err))
	}

	<-cronRunner.Stop().Done()

	closeQueue()
	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	auditDispatcher.Close()

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	l.Info("bye")
}

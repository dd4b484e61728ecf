package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yegebere/gebeya-auth/config"
	"github.com/yegebere/gebeya-auth/internal/container"
	"github.com/yegebere/gebeya-auth/internal/infrastructure/delivery"
	pginfra "github.com/yegebere/gebeya-auth/internal/infrastructure/postgres"
	"github.com/yegebere/gebeya-auth/internal/interface/middleware"
	"github.com/yegebere/gebeya-auth/internal/router"
	"github.com/yegebere/gebeya-auth/pkg/helpers"
	"github.com/yegebere/gebeya-auth/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// RabbitMQ publisher for auth events (optional: log-only when unavailable)
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventQueue)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, auth events disabled")
	} else {
		defer pub.Close()
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	// Delivery channels: SMS first, Telegram bot as fallback
	contactRepo := pginfra.NewTelegramContactRepository(pool)
	sms := delivery.NewSMSGateway(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSSender, cfg.SMSAPIBaseURL, cfg.SMSTimeout, logger)
	bot := delivery.NewTelegramBot(cfg.TelegramBotToken, cfg.TelegramAPIBaseURL, cfg.TelegramTimeout, contactRepo, logger)
	chain := delivery.NewChain(sms, bot)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetRabbitPub(pub)
	container.SetSMSGateway(sms)
	container.SetTelegramBot(bot)
	container.SetDeliveryChain(chain)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	// Periodic sweep of consumed/expired OTP rows
	reapCtx, stopReaper := context.WithCancel(ctx)
	go reapLoop(reapCtx, pginfra.NewOTPRepository(pool), cfg.OTPReapInterval, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stopReaper()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func reapLoop(ctx context.Context, otps *pginfra.OTPRepository, interval time.Duration, logger *logrus.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			reaped, err := otps.DeleteExpired(ctx, time.Now())
			if err != nil {
				logger.WithError(err).Error("otp reap failed")
				continue
			}
			if reaped > 0 {
				logger.WithField("reaped", reaped).Debug("expired otp records removed")
			}
		}
	}
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmiyata/schedule-api/internal/config"
	"github.com/hmiyata/schedule-api/internal/handler"
	authHandler "github.com/hmiyata/schedule-api/internal/handler/auth"
	scheduleHandler "github.com/hmiyata/schedule-api/internal/handler/schedule"
	slotHandler "github.com/hmiyata/schedule-api/internal/handler/slot"
	staffHandler "github.com/hmiyata/schedule-api/internal/handler/staff"
	"github.com/hmiyata/schedule-api/internal/middleware"
	"github.com/hmiyata/schedule-api/internal/repository/postgres"
	"github.com/hmiyata/schedule-api/internal/router"
	authService "github.com/hmiyata/schedule-api/internal/service/auth"
	slotService "github.com/hmiyata/schedule-api/internal/service/slot"
	staffService "github.com/hmiyata/schedule-api/internal/service/staff"
	"github.com/hmiyata/schedule-api/internal/viewcache"
	"github.com/hmiyata/schedule-api/pkg/auth"
	"github.com/hmiyata/schedule-api/pkg/logger"
	redisBroker "github.com/hmiyata/schedule-api/pkg/messaging/redis"
	"github.com/hmiyata/schedule-api/pkg/security"
)

func main() {
	// Local development reads credentials from a .env file; in deployment
	// they arrive through the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})
	log.Logger = lg

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(ctx, db, cfg.Server.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &lg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	views := viewcache.New(
		gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		broker,
		lg,
	)
	go func() {
		if err := views.Listen(ctx); err != nil {
			log.Error().Err(err).Msg("view cache listener stopped")
		}
	}()

	staffRepo := postgres.NewStaffRepository(db)
	slotRepo := postgres.NewSlotRepository(db)

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	staffSvc := staffService.NewService(staffRepo, hasher, views, lg)
	slotSvc := slotService.NewService(slotRepo, views, lg)
	authSvc := authService.NewService(staffRepo, jwtSvc, hasher, lg)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		scheduleHandler.NewHandler(staffSvc, slotSvc, views),
		staffHandler.NewHandler(staffSvc),
		slotHandler.NewHandler(slotSvc),
		handler.NewHandler(db),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			MetricsPrefix:  "schedule_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

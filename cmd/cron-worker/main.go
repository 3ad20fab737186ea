package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/internal/cron"
	"github.com/mammamia/pizzeria-backend/internal/customers"
	"github.com/mammamia/pizzeria-backend/internal/delivery"
	"github.com/mammamia/pizzeria-backend/internal/discounts"
	"github.com/mammamia/pizzeria-backend/internal/orders"
	"github.com/mammamia/pizzeria-backend/internal/pricing"
	"github.com/mammamia/pizzeria-backend/pkg/config"
	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
	"github.com/mammamia/pizzeria-backend/pkg/metrics"
	"github.com/mammamia/pizzeria-backend/pkg/migrate"
	"github.com/mammamia/pizzeria-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	catalogRepo := catalog.NewRepository(gormDB)
	pricingRepo := pricing.NewRepository(gormDB)
	customersRepo := customers.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)

	discountsService, err := discounts.NewService(discounts.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create discounts service", err)
		os.Exit(1)
	}

	deliveryService, err := delivery.NewService(delivery.NewRepository(gormDB), cfg.Orders)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		ordersRepo,
		customersRepo,
		catalogRepo,
		pricingRepo,
		discountsService,
		deliveryService,
		dbClient,
		nil,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	staleOrderJob, err := cron.NewStaleOrderJob(cron.StaleOrderJobParams{
		Logger: logg,
		Reader: ordersRepo,
		Orders: ordersService,
		TTL:    cfg.Orders.PendingOrderTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stale order job", err)
		os.Exit(1)
	}

	dietaryJob, err := cron.NewDietaryReconcileJob(cron.DietaryReconcileJobParams{
		Logger:  logg,
		Pricing: pricingRepo,
		Pizzas:  catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dietary reconcile job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(cfg.Cron.LockKey), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(staleOrderJob, dietaryJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

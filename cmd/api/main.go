package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/motordesk/backend/api/routes"
	"github.com/motordesk/backend/internal/catalog"
	"github.com/motordesk/backend/internal/customers"
	"github.com/motordesk/backend/internal/inquiries"
	"github.com/motordesk/backend/internal/offers"
	"github.com/motordesk/backend/internal/vehicles"
	"github.com/motordesk/backend/pkg/config"
	"github.com/motordesk/backend/pkg/db"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/migrate"
	"github.com/motordesk/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	vehicleRepo := vehicles.NewRepository(dbClient.DB())
	offerRepo := offers.NewRepository(dbClient.DB())
	customerRepo := customers.NewRepository(dbClient.DB())
	inquiryRepo := inquiries.NewRepository(dbClient.DB())

	vehicleService, err := vehicles.NewService(vehicleRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicle service", err)
		os.Exit(1)
	}
	offerService, err := offers.NewService(offerRepo, vehicleRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create offer service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customerRepo, vehicleRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}
	inquiryService, err := inquiries.NewService(inquiryRepo, vehicleRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create inquiry service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(vehicleRepo, offerRepo, redisClient, cfg.Catalog.SnapshotTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			vehicleService,
			offerService,
			customerService,
			inquiryService,
			catalogService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

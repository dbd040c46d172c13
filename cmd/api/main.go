package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/openmeeple/meeplevault-backend/api/routes"
	"github.com/openmeeple/meeplevault-backend/internal/auth"
	"github.com/openmeeple/meeplevault-backend/internal/bgg"
	"github.com/openmeeple/meeplevault-backend/internal/collection"
	"github.com/openmeeple/meeplevault-backend/internal/users"
	"github.com/openmeeple/meeplevault-backend/pkg/auth/session"
	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/openmeeple/meeplevault-backend/pkg/db"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
	"github.com/openmeeple/meeplevault-backend/pkg/metrics"
	"github.com/openmeeple/meeplevault-backend/pkg/migrate"
	"github.com/openmeeple/meeplevault-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalogClient := bgg.NewClient(cfg.BGG, metrics.NewUpstreamMetrics(registry))
	catalogService := bgg.NewService(catalogClient, logg)

	userRepo := users.NewRepository(dbClient.DB())
	entryRepo := collection.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		CollectionRepo: entryRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	collectionService, err := collection.NewService(collection.ServiceParams{
		EntryRepo: entryRepo,
		Catalog:   catalogService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create collection service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(userRepo, entryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
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
		Handler: routes.NewRouter(routes.RouterParams{
			Config:            cfg,
			Logger:            logg,
			DB:                dbClient,
			Redis:             redisClient,
			SessionChecker:    sessionManager,
			AuthService:       authService,
			CatalogService:    catalogService,
			CollectionService: collectionService,
			UsersService:      usersService,
			MetricsRegistry:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

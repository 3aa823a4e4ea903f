package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/multiprice-backend/api/controllers"
	"github.com/angelmondragon/multiprice-backend/api/routes"
	"github.com/angelmondragon/multiprice-backend/internal/documents"
	"github.com/angelmondragon/multiprice-backend/internal/pricelists"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	"github.com/angelmondragon/multiprice-backend/internal/uom"
	"github.com/angelmondragon/multiprice-backend/pkg/config"
	"github.com/angelmondragon/multiprice-backend/pkg/db"
	"github.com/angelmondragon/multiprice-backend/pkg/instance"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
	"github.com/angelmondragon/multiprice-backend/pkg/metrics"
	"github.com/angelmondragon/multiprice-backend/pkg/migrate"
	"github.com/angelmondragon/multiprice-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	readiness := map[string]controllers.Pinger{"db": dbClient, "redis": nil}

	var (
		priceCache  pricelists.PriceCache
		invalidator product.CatalogInvalidator
	)
	if cfg.Redis.Enabled() {
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
		cache := pricelists.NewRedisPriceCache(redisClient, cfg.Pricing.CacheTTL, logg)
		priceCache = cache
		invalidator = cache
		readiness["redis"] = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, price cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	uomRepo := uom.NewRepository(dbClient.DB())
	uomService, err := uom.NewService(uomRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create uom service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(product.NewRepository(dbClient.DB()), dbClient, uomRepo, invalidator)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	pricelistService, err := pricelists.NewService(pricelists.ServiceParams{
		Repo:     pricelists.NewRepository(dbClient.DB()),
		Products: productService,
		Units:    uomService,
		Cache:    priceCache,
		Metrics:  metrics.NewPricingMetrics(registry),
		Logger:   logg,
		Config:   cfg.Pricing,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pricelist service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(documents.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create document service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"dialect":  dbClient.Dialect(),
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(cfg, logg, registry, metrics.NewHTTPMetrics(registry), readiness, routes.Services{
		Uom:        uomService,
		Products:   productService,
		Pricelists: pricelistService,
		Documents:  documentService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

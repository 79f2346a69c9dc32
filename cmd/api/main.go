package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/diarmuidw/enquiry-backend/api/controllers"
	"github.com/diarmuidw/enquiry-backend/api/routes"
	"github.com/diarmuidw/enquiry-backend/internal/availability"
	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
	"github.com/diarmuidw/enquiry-backend/internal/enquiry"
	"github.com/diarmuidw/enquiry-backend/internal/products"
	"github.com/diarmuidw/enquiry-backend/internal/protection"
	"github.com/diarmuidw/enquiry-backend/pkg/config"
	"github.com/diarmuidw/enquiry-backend/pkg/db"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
	"github.com/diarmuidw/enquiry-backend/pkg/metrics"
	"github.com/diarmuidw/enquiry-backend/pkg/migrate"
	"github.com/diarmuidw/enquiry-backend/pkg/pubsub"
	"github.com/diarmuidw/enquiry-backend/pkg/redis"
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

	draftsClient, err := draftorders.NewClient(cfg.DraftAPI.BaseURL,
		draftorders.WithTimeout(cfg.DraftAPI.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create draft api client", err)
		os.Exit(1)
	}

	productCache := products.NewCache(products.CacheParams{
		Store:  redisClient,
		Logger: logg,
		TTL:    cfg.Enquiry.CountMirrorTTL,
	})

	pingers := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var publisher enquiry.Publisher
	if cfg.PubSub.Enabled() && cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		publisher = enquiry.NewPubSubPublisher(pubsubClient.SubmittedPublisher())
		pingers["pubsub"] = pubsubClient
	}

	enquiryService, err := enquiry.NewService(enquiry.ServiceParams{
		Drafts:         draftsClient,
		Cache:          productCache,
		Logger:         logg,
		Publisher:      publisher,
		DebounceWindow: cfg.Enquiry.DebounceWindow,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create enquiry service", err)
		os.Exit(1)
	}
	enquiryService.Start()
	defer enquiryService.Stop()

	availabilityService, err := availability.NewService(availability.ServiceParams{
		Repo:   availability.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	tiers, err := protection.ParseTiers(cfg.Protection.Tiers)
	if err != nil {
		logg.Error(context.Background(), "invalid protection tier config", err)
		os.Exit(1)
	}
	protectionService, err := protection.NewService(protection.ServiceParams{
		Tiers:   tiers,
		RateBps: cfg.Protection.RateBps,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create protection service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
			Config:       cfg,
			Logger:       logg,
			Metrics:      httpMetrics,
			Registry:     registry,
			Enquiry:      enquiryService,
			Credentials:  enquiry.NewCredentialStore(cfg.Cookie),
			Availability: availabilityService,
			Protection:   protectionService,
			Pingers:      pingers,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(stopCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

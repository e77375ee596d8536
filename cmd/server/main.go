package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scanhub/internal/intake/classifier"
	"scanhub/internal/intake/doctypes"
	"scanhub/internal/intake/handler"
	intakeMetrics "scanhub/internal/intake/metrics"
	"scanhub/internal/intake/normalizer"
	"scanhub/internal/intake/service"
	"scanhub/internal/lifecycle"
	lifecycleMetrics "scanhub/internal/lifecycle/metrics"
	"scanhub/internal/lifecycle/store"
	"scanhub/internal/platform/config"
	"scanhub/internal/platform/httpserver"
	"scanhub/internal/platform/logger"
	"scanhub/internal/platform/postgres"
	platformRedis "scanhub/internal/platform/redis"
	"scanhub/internal/reconcile"
	"scanhub/internal/refdata"
	refdataMetrics "scanhub/internal/refdata/metrics"
	"scanhub/internal/stream"
	httptransport "scanhub/internal/transport/http"
)

// main wires the intake pipeline, the lifecycle and the reconcilers, and
// keeps the server lifecycle small. Business logic lives in the internal
// services packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("scanhub exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := postgres.Connect(startupCtx, cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	eventStore := store.NewPostgresStore(pool)
	if err := eventStore.EnsureSchema(startupCtx); err != nil {
		return err
	}

	redisClient, err := platformRedis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	refMetrics := refdataMetrics.New()
	var gateway refdata.Gateway = refdata.NewHTTPGateway(cfg.RefDataBaseURL, cfg.RefDataTimeout, log, refMetrics)
	if redisClient != nil {
		gateway = refdata.NewCachedGateway(gateway, redisClient.Client, cfg.RefDataCacheTTL, log, refMetrics)
	}

	var publisher lifecycle.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := stream.NewKafkaPublisher(startupCtx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return err
		}
		defer kafka.Close()
		publisher = kafka
	} else {
		log.Warn("no kafka brokers configured, lifecycle events are log-only")
		publisher = stream.NewLogPublisher(log)
	}

	lifecycleService := lifecycle.NewService(eventStore, publisher, lifecycleMetrics.New(), log)

	table := doctypes.Default()
	intakeService := service.New(
		normalizer.New(table, gateway, log),
		classifier.New(table, gateway, log),
		lifecycleService,
		intakeMetrics.New(),
		log,
		cfg.IngestConcurrency,
	)

	cases := reconcile.NewHTTPCaseService(cfg.CaseServiceBaseURL, cfg.CaseServiceTimeout)
	reconcileService := reconcile.NewService(cases, lifecycleService, log)

	health := []httptransport.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
	}
	if redisClient != nil {
		health = append(health, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:    log,
		Envelopes: handler.New(intakeService, lifecycleService, reconcileService, log),
		Health:    health,
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting scanhub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

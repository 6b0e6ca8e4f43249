package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	projectservice "renopick/contexts/consumer-projects/project-service"
	projectpostgres "renopick/contexts/consumer-projects/project-service/adapters/postgres"
	projectworkers "renopick/contexts/consumer-projects/project-service/application/workers"
	comparisonengine "renopick/contexts/quote-exchange/comparison-engine"
	comparisonpostgres "renopick/contexts/quote-exchange/comparison-engine/adapters/postgres"
	distributionservice "renopick/contexts/quote-exchange/distribution-service"
	distributionpostgres "renopick/contexts/quote-exchange/distribution-service/adapters/postgres"
	distributionworkers "renopick/contexts/quote-exchange/distribution-service/application/workers"
	quoteservice "renopick/contexts/quote-exchange/quote-service"
	quotepostgres "renopick/contexts/quote-exchange/quote-service/adapters/postgres"
	quoteworkers "renopick/contexts/quote-exchange/quote-service/application/workers"
	"renopick/internal/platform/config"
	"renopick/internal/platform/db"
	"renopick/internal/platform/httpserver"
	"renopick/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres          *db.Postgres
	distributionRelay *distributionworkers.OutboxRelay
	quoteRelay        *quoteworkers.OutboxRelay
	quoteConsumer     *projectworkers.QuoteSubmittedConsumer
	slaWatcher        *projectworkers.SLAWatcher
	pollInterval      time.Duration
	logger            *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	projectRepo := projectpostgres.NewRepository(pg.DB, logger)
	projectModule := projectservice.NewModule(projectservice.Dependencies{
		Repository: projectRepo,
		Quotes:     projectRepo,
		Clock:      projectpostgres.SystemClock{},
		IDGen:      projectpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	distributionRepo := distributionpostgres.NewRepository(pg.DB, logger)
	distributionOutbox := distributionpostgres.NewOutboxRepository(pg.DB, logger)
	distributionModule := distributionservice.NewModule(distributionservice.Dependencies{
		Repository: distributionRepo,
		Vendors:    distributionRepo,
		Projects:   distributionRepo,
		Outbox:     distributionOutbox,
		Clock:      distributionpostgres.SystemClock{},
		IDGen:      distributionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	quoteRepo := quotepostgres.NewRepository(pg.DB, logger)
	quoteOutbox := quotepostgres.NewOutboxRepository(pg.DB, logger)
	quoteModule := quoteservice.NewModule(quoteservice.Dependencies{
		Repository: quoteRepo,
		Templates:  quoteRepo,
		Projects:   quoteRepo,
		Outbox:     quoteOutbox,
		Clock:      quotepostgres.SystemClock{},
		IDGen:      quotepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	comparisonRepo := comparisonpostgres.NewRepository(pg.DB, logger)
	comparisonModule := comparisonengine.NewModule(comparisonengine.Dependencies{
		Quotes: comparisonRepo,
		Logger: logger,
	})

	server := httpserver.New(
		projectModule,
		distributionModule,
		quoteModule,
		comparisonModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	app := &WorkerApp{
		postgres:     pg,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}

	if cfg.EnableDistributionOutboxRelay {
		app.distributionRelay = &distributionworkers.OutboxRelay{
			Repository: distributionpostgres.NewOutboxRepository(pg.DB, logger),
			Publisher:  kafka,
			Topic:      "distribution.round_started",
			BatchSize:  100,
			Clock:      distributionpostgres.SystemClock{},
			Logger:     logger,
		}
	}
	if cfg.EnableQuoteOutboxRelay {
		app.quoteRelay = &quoteworkers.OutboxRelay{
			Repository: quotepostgres.NewOutboxRepository(pg.DB, logger),
			Publisher:  kafka,
			Topic:      "quote.submitted",
			BatchSize:  100,
			Clock:      quotepostgres.SystemClock{},
			Logger:     logger,
		}
	}
	if cfg.EnableQuoteSubmittedConsumer {
		app.quoteConsumer = &projectworkers.QuoteSubmittedConsumer{
			Subscriber:    kafka,
			Repository:    projectpostgres.NewRepository(pg.DB, logger),
			Clock:         projectpostgres.SystemClock{},
			ConsumerGroup: "project-service-quote-submitted-cg",
			Logger:        logger,
		}
	}
	if cfg.EnableSLAWatcher {
		projectRepo := projectpostgres.NewRepository(pg.DB, logger)
		app.slaWatcher = &projectworkers.SLAWatcher{
			Repository: projectRepo,
			Quotes:     projectRepo,
			Clock:      projectpostgres.SystemClock{},
			BatchSize:  100,
			Logger:     logger,
		}
	}
	return app, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	if w.quoteConsumer != nil {
		if err := w.quoteConsumer.Start(ctx); err != nil {
			return err
		}
	}

	for {
		if w.distributionRelay != nil {
			if err := w.distributionRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.quoteRelay != nil {
			if err := w.quoteRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.slaWatcher != nil {
			if err := w.slaWatcher.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

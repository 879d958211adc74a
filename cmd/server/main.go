// Command server runs the synapse capture API: content ingestion with
// AI enrichment, the concept graph, and the live WebSocket feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jotarampini-cell/synapse/internal/ai"
	"github.com/jotarampini-cell/synapse/internal/api"
	"github.com/jotarampini-cell/synapse/internal/config"
	"github.com/jotarampini-cell/synapse/internal/db"
	"github.com/jotarampini-cell/synapse/internal/db/migrations"
	"github.com/jotarampini-cell/synapse/internal/dbpool"
	"github.com/jotarampini-cell/synapse/internal/service"
	"github.com/jotarampini-cell/synapse/internal/store"
	"github.com/jotarampini-cell/synapse/internal/webclip"
	"github.com/jotarampini-cell/synapse/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := db.EnsureVectorDimensions(ctx, pool, log, cfg.EmbeddingDimensions); err != nil {
		return fmt.Errorf("checking embedding dimensions: %w", err)
	}

	base := store.Base{Pool: pool, Log: log}
	contentStore := store.NewContentStore(base)
	summaryStore := store.NewSummaryStore(base)
	conceptStore := store.NewConceptStore(base)
	connectionStore := store.NewConnectionStore(base)
	activityStore := store.NewActivityStore(base)

	embedder := ai.NewEmbeddingClient(cfg.OllamaURL, cfg.EmbeddingModel)
	enricher := ai.NewEnricher(ai.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey.Value(), cfg.LLMModel))
	clipper := webclip.NewExtractor()

	embedWorker := service.NewEmbedWorker(embedder, contentStore, log, 0, cfg.EmbedWorkers)
	activityWorker := service.NewActivityWorker(activityStore, log, 0)

	graphSvc := service.NewGraphService(conceptStore, connectionStore, log)
	ingestor := service.NewIngestor(contentStore, summaryStore, graphSvc,
		embedder, enricher, clipper, embedWorker, activityWorker, log)
	activitySvc := service.NewActivityService(activityStore)

	hub := ws.NewHub(log)
	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return fmt.Errorf("starting notify bridge: %w", err)
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:            log,
		Pool:           pool,
		Hub:            hub,
		Content:        ingestor,
		Graph:          graphSvc,
		Activity:       activitySvc,
		Backfill:       embedWorker,
		UserLookup:     &base,
		CORSOrigins:    cfg.CORSOrigins,
		Version:        config.Version,
		OllamaURL:      cfg.OllamaURL,
		EmbeddingModel: cfg.EmbeddingModel,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		embedWorker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		activityWorker.Run(gctx)
		return nil
	})

	// Pick up content rows left without an embedding by earlier failures.
	g.Go(func() error {
		if err := embedWorker.Sweep(gctx); err != nil {
			log.WithError(err).Warn("startup embedding sweep failed")
		}
		return nil
	})

	g.Go(func() error {
		log.WithField("addr", cfg.Addr()).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		hub.Shutdown()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

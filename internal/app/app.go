package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openmined/foldersense/internal/blob"
	"github.com/openmined/foldersense/internal/config"
	"github.com/openmined/foldersense/internal/describe"
	"github.com/openmined/foldersense/internal/graph"
	"github.com/openmined/foldersense/internal/pipeline"
	"github.com/openmined/foldersense/internal/server"
	"github.com/openmined/foldersense/internal/state"
)

// App wires the configured components into a runnable pipeline.
type App struct {
	config    *config.Config
	processor *pipeline.Processor
	lock      *state.RunLock
}

// New builds the full component graph from config.
func New(cfg *config.Config) (*App, error) {
	graphClient := graph.NewClient(&graph.ClientConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TenantID:     cfg.TenantID,
	})
	fetcher := graph.NewFetcher(graphClient, cfg.DriveUser)

	store, err := blob.NewS3Store(&blob.Config{
		Bucket:    cfg.Store.Bucket,
		Region:    cfg.Store.Region,
		AccessKey: cfg.Store.AccessKey,
		SecretKey: cfg.Store.SecretKey,
		Endpoint:  cfg.Store.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store: %w", err)
	}

	tokens := state.NewTokenStore(store, cfg.Store.TokenKey)
	cache := describe.NewSummaryCache(store, cfg.Store.CachePrefix)

	summarizer := describe.NewAnthropicSummarizer(&describe.SummarizerConfig{
		APIKey:          cfg.AI.APIKey,
		Model:           cfg.AI.Model,
		MaxRetries:      cfg.AI.MaxRetries,
		RequestDelay:    cfg.AI.RequestDelay,
		MaxContentBytes: cfg.AI.MaxContentBytes,
	})
	generator := describe.NewGenerator(summarizer, cache)

	return &App{
		config:    cfg,
		processor: pipeline.NewProcessor(fetcher, tokens, generator, cfg.DescriptionFilename),
		lock:      state.NewRunLock(cfg.LockPath),
	}, nil
}

// RunOnce executes a single pipeline pass under the run lock.
func (a *App) RunOnce(ctx context.Context) (*pipeline.RunReport, error) {
	if err := a.lock.TryLock(); err != nil {
		return nil, err
	}
	defer a.lock.Unlock()

	return a.processor.Run(ctx)
}

// RunDaemon serves the health endpoint and runs the pipeline every
// configured interval until ctx is cancelled.
func (a *App) RunDaemon(ctx context.Context) error {
	srv := server.New(a.config.HTTPAddr)
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start(ctx)
	}()

	// run once up front, then on a reset timer: a ticker would queue ticks
	// when a pass outlasts the interval
	a.tick(ctx)

	timer := time.NewTimer(a.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return <-srvErr
		case err := <-srvErr:
			return err
		case <-timer.C:
			a.tick(ctx)
			timer.Reset(a.config.Interval)
		}
	}
}

// tick runs one pass, logging failures instead of stopping the daemon: a
// failed run left the cursor untouched and will be retried next interval.
func (a *App) tick(ctx context.Context) {
	report, err := a.RunOnce(ctx)
	switch {
	case errors.Is(err, context.Canceled):
	case errors.Is(err, state.ErrAlreadyRunning):
		slog.Warn("skipping tick, previous run still in progress")
	case err != nil:
		slog.Error("pipeline run failed, will retry next tick", "error", err)
	default:
		slog.Info("pipeline run finished",
			"changed_items", report.ChangedItems,
			"folders", report.AffectedFolders,
		)
	}
}

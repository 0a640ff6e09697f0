package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/nmehta6/paisatrail/internal/accounts"
	"github.com/nmehta6/paisatrail/internal/cli"
	"github.com/nmehta6/paisatrail/internal/engine"
	"github.com/nmehta6/paisatrail/internal/model"
	"github.com/nmehta6/paisatrail/internal/registry"
	"github.com/nmehta6/paisatrail/internal/storage"
)

// app wires the extraction core together for a CLI invocation: the
// configuration database, the pattern registry seeded with built-ins
// plus stored custom bundles, and the account mapping service.
type app struct {
	store    *storage.SQLiteStorage
	registry *registry.Registry
	accounts *accounts.MappingService
	pipeline *engine.Pipeline
}

func newApp(ctx context.Context) (*app, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".config", "paisa", "paisa.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	reg := registry.NewWithDefaults()
	stored, err := store.ListPatternBundles(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load custom patterns: %w", err)
	}
	for _, bundle := range stored {
		if regErr := reg.Register(bundle); regErr != nil {
			slog.Warn("skipping stored pattern bundle", "id", bundle.ID, "error", regErr)
		}
	}

	svc := accounts.NewMappingService()
	mappings, err := store.ListAccountMappings(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load account mappings: %w", err)
	}
	for _, mapping := range mappings {
		if resErr := svc.Restore(mapping); resErr != nil {
			slog.Warn("skipping stored account mapping", "id", mapping.ID, "error", resErr)
		}
	}

	return &app{
		store:    store,
		registry: reg,
		accounts: svc,
		pipeline: engine.NewPipeline(reg, svc),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) processor() *engine.Processor {
	return engine.NewProcessor(a.pipeline, engine.Config{
		ChunkSize:    viper.GetInt("engine.chunk_size"),
		Concurrency:  viper.GetInt("engine.concurrency"),
		Timeout:      viper.GetDuration("engine.timeout"),
		CacheSize:    viper.GetInt("engine.cache_size"),
		CacheEnabled: true,
	})
}

// renderResult prints one extraction result. The auto-accept threshold
// is caller policy, sourced from configuration, never from the engine.
func renderResult(res model.ExtractionResult, threshold float64) {
	if !res.Success {
		fmt.Printf("%s %s\n", cli.ErrorStyle.Render("✗"),
			fmt.Sprintf("%s (%s, confidence %.2f)", res.Detail, res.Reason, res.Confidence))
		return
	}

	txn := res.Transaction
	marker := cli.SuccessStyle.Render("✓")
	disposition := "auto-accept"
	if res.Confidence < threshold {
		marker = cli.WarningStyle.Render("?")
		disposition = "needs review"
	}

	fmt.Printf("%s %s %s %s  %s\n", marker,
		cli.BoldStyle.Render(txn.Amount.StringFixed(2)),
		string(txn.Kind),
		txn.Merchant,
		cli.SubtleStyle.Render(fmt.Sprintf("%s · confidence %s · %s",
			txn.Date.Format("2006-01-02 15:04"),
			cli.Confidence(res.Confidence, threshold),
			disposition)))

	if txn.AccountID != "" {
		fmt.Printf("  %s\n", cli.SubtleStyle.Render("account: "+txn.AccountID))
	}
}

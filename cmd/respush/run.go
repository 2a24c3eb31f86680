package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"respush/internal/common"
	"respush/internal/config"
	"respush/internal/domain/catalog"
	"respush/internal/domain/push"
	"respush/internal/infra/ratelimit"
	"respush/internal/infra/sheet"
	"respush/internal/infra/template"
	"respush/internal/infra/wecom"

	"github.com/spf13/cobra"
)

func runPush(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Initialize structured logger
	slog.SetDefault(newLogger(cfg.Log, os.Stdout))

	summary, err := execute(cmd.Context(), cfg)
	if err != nil {
		slog.Error(failureMessage(err), "error", err)
		return err
	}

	for _, r := range summary.Results {
		if r.Outcome == push.OutcomeFailed {
			slog.Warn("type not delivered", "type", r.Type, "error", r.Err)
		}
	}
	return nil
}

// failureMessage names the class of a run-ending error.
func failureMessage(err error) string {
	if common.IsFatal(err) {
		return "catalog or configuration rejected, nothing sent"
	}
	return "push run aborted"
}

// execute loads the catalog and pushes every qualifying type.
// Only configuration and loading problems are returned as errors; per-type send
// failures are reported in the summary.
func execute(ctx context.Context, cfg *config.Config) (*push.Summary, error) {
	slog.Info("reading catalog",
		"path", cfg.Catalog.Path,
		"sheet", cfg.Catalog.Sheet,
		"columns", cfg.Catalog.Columns(),
	)

	idx, err := catalog.Load(ctx, sheet.NewReader(cfg.Catalog.Sheet), cfg.Catalog.Path, cfg.Catalog.Columns())
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	slog.Info("catalog read",
		"types", idx.Len(),
		"resources", idx.Total(),
		"dropped_rows", idx.Dropped(),
	)

	if idx.Len() == 0 {
		slog.Warn("no resource types recognized, nothing to push")
		return &push.Summary{}, nil
	}

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	engine, err := template.NewEngine(template.MaxMessageRunes)
	if err != nil {
		return nil, fmt.Errorf("initializing template engine: %w", err)
	}

	var sampler *push.Sampler
	if seed, ok, _ := cfg.Push.SeedValue(); ok {
		sampler = push.NewSampler(&seed)
		slog.Info("deterministic sampling enabled", "seed", seed)
	} else {
		sampler = push.NewSampler(nil)
	}

	provider := wecom.NewWebhookProvider(cfg.Webhook.URL, cfg.Webhook.Timeout(), cfg.Webhook.InsecureSkipVerify)
	pacer := ratelimit.NewPacer(cfg.Push.Interval())

	svc := push.NewService(push.NewFormatter(sampler, engine), provider, pacer, cfg.Push.PerType)

	slog.Info("pushing",
		"types", idx.Len(),
		"interval", pacer.Interval(),
	)

	return svc.Run(ctx, idx)
}

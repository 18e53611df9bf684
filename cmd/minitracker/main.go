package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/minicrushers/minitracker/internal/app"
	"github.com/minicrushers/minitracker/internal/config"
	"github.com/minicrushers/minitracker/internal/observability"
	"github.com/minicrushers/minitracker/internal/platform/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "minitracker",
		Short:         "NYT Mini crossword leaderboard tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCommand("ingest", "Scrape the leaderboard and record new times", func(ctx context.Context, a *app.App) error {
			return a.Ingestion.IngestLatest(ctx)
		}),
		newRunCommand("finalize", "Credit the completed day's winner and post the final report (not idempotent, run once per day)", func(ctx context.Context, a *app.App) error {
			return a.Standings.FinalizeDay(ctx, time.Now())
		}),
		newRunCommand("recompute", "Replay history and report wins and streaks without writing", func(ctx context.Context, a *app.App) error {
			replay, err := a.Recalculation.Replay(ctx, time.Now())
			if err != nil {
				return err
			}

			logger := logging.Default()
			logger.InfoContext(ctx, "replayed history",
				"days", replay.DaysReplayed,
				"current_streak_holder", replay.CurrentStreakHolder,
				"current_streak", replay.CurrentStreakLength,
				"max_streak", replay.MaxStreakLength,
			)
			for username, wins := range replay.WinsByUser {
				logger.InfoContext(ctx, "wins total", "username", username, "wins", wins)
			}
			return nil
		}),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCommand(use, short string, run func(context.Context, *app.App) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrapAndRun(cmd.Context(), use, run)
		},
	}
}

// traceRun opens the root span for one invocation; every downstream span
// attaches under it.
func traceRun(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer("minitracker/cmd").Start(ctx, "run."+name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func bootstrapAndRun(ctx context.Context, use string, run func(context.Context, *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	return traceRun(ctx, use, func(ctx context.Context) error {
		return run(ctx, a)
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matchday-data/epl-warehouse/internal/app"
	"github.com/matchday-data/epl-warehouse/internal/config"
	"github.com/matchday-data/epl-warehouse/internal/domain/etlrun"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
	"github.com/matchday-data/epl-warehouse/internal/usecase"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "etl",
		Short:         "EPL data warehouse pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPingCmd(),
		newRunCmd(),
		newStageCmd(),
		newCleanCmd(),
		newDimensionsCmd(),
		newMappingsCmd(),
		newFactsCmd(),
		newCleanupCmd(),
	)
	return root
}

// bootstrap loads config, builds the app and hands it to fn, closing the pool
// afterwards.
func bootstrap(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	return fn(cmd.Context(), a)
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verify database connectivity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Ping(ctx); err != nil {
					return err
				}
				cmd.Println("database reachable")
				return nil
			})
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline, extract through cleanup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Pipeline.Run(ctx)
				printPipelineReport(cmd, report)
				if err != nil {
					return err
				}
				if report.Failed() {
					return fmt.Errorf("pipeline finished with failed phases")
				}
				return nil
			})
		},
	}
}

func newStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage",
		Short: "Stage all configured sources into the raw tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Staging.Run(ctx)
				if err != nil {
					return err
				}
				for _, task := range report.Tasks {
					line := fmt.Sprintf("%-8s %-40s %s", task.Source, task.Key, task.Status)
					if task.Status == usecase.StatusSuccess {
						line += fmt.Sprintf(" (%d rows)", task.Rows)
					} else if task.Message != "" {
						line += " " + task.Message
					}
					cmd.Println(line)
				}
				cmd.Printf("staged %d rows, %d succeeded, %d skipped, %d failed\n",
					report.RowsStaged(), report.SuccessCount, report.SkippedCount, report.FailedCount)
				if report.FailedCount > 0 {
					return fmt.Errorf("%d staging task(s) failed", report.FailedCount)
				}
				return nil
			})
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Normalize staged names in place",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Cleaning.Run(ctx)
				if err != nil {
					return err
				}
				for table, rows := range report.RowsCleaned {
					cmd.Printf("%-24s %d rows\n", table, rows)
				}
				cmd.Printf("cleaned %d rows\n", report.Total())
				return nil
			})
		},
	}
}

func newDimensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions",
		Short: "Ensure sentinels and upsert every dimension",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Dimensions.RunAll(ctx)
				if err != nil {
					return err
				}
				for _, res := range report.Results {
					if res.Status == usecase.StatusFailed {
						cmd.Printf("%-16s failed: %s\n", res.Dimension, res.Message)
						continue
					}
					cmd.Printf("%-16s %d rows\n", res.Dimension, res.RowsAffected)
				}
				if failed := report.FailedCount(); failed > 0 {
					return fmt.Errorf("%d dimension(s) failed", failed)
				}
				return nil
			})
		},
	}
}

func newMappingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "Resolve StatsBomb teams and matches against the warehouse",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Mappings.Run(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("teams: %d resolved, %d unresolved\n", report.TeamsResolved, report.TeamsUnresolved)
				cmd.Printf("matches: %d resolved, %d unmatched\n", report.MatchesResolved, report.MatchesUnmatched)
				return nil
			})
		},
	}
}

func newFactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facts",
		Short: "Load fact_match, fact_player_stats and fact_match_events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				matches, err := a.Facts.LoadMatches(ctx)
				if err != nil {
					return err
				}
				printFactReport(cmd, "fact_match", matches)

				stats, err := a.Facts.LoadPlayerStats(ctx)
				if err != nil {
					return err
				}
				printFactReport(cmd, "fact_player_stats", stats)

				events, err := a.Facts.LoadEvents(ctx)
				if err != nil {
					return err
				}
				printFactReport(cmd, "fact_match_events", events)

				if failed := matches.FailedCount + stats.FailedCount + events.FailedCount; failed > 0 {
					return fmt.Errorf("%d fact unit(s) failed", failed)
				}
				return nil
			})
		},
	}
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Truncate the staging tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.TruncateStaging(ctx); err != nil {
					return err
				}
				cmd.Println("staging tables truncated")
				return nil
			})
		},
	}
}

func printFactReport(cmd *cobra.Command, table string, report usecase.FactLoadReport) {
	cmd.Printf("%s: %d rows over %d unit(s), %d failed\n",
		table, report.RowsLoaded(), len(report.Units), report.FailedCount)
	for _, unit := range report.Units {
		if unit.Status != usecase.StatusSuccess {
			cmd.Printf("  %-32s %s %s\n", unit.Unit, unit.Status, unit.Message)
		}
	}
}

func printPipelineReport(cmd *cobra.Command, report usecase.PipelineReport) {
	for _, phase := range report.Phases {
		line := fmt.Sprintf("%-20s %-8s %8d rows %12s", phase.Phase, phase.Status, phase.RowsProcessed, phase.Duration.Round(time.Millisecond))
		if phase.Status != etlrun.StatusSuccess && phase.Message != "" {
			line += " " + phase.Message
		}
		cmd.Println(line)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/cognet-graph/internal/adapter/langname"
	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres"
	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres/cognates"
	"github.com/heartmarshall/cognet-graph/internal/app"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet"
	"github.com/heartmarshall/cognet-graph/internal/config"
)

var phaseHelp = map[string]string{
	cognet.PhaseNormalize:   "Split the raw corpus into unique word entries",
	cognet.PhaseLoadEntries: "Bulk-load the entries artifact into the cognates table",
	cognet.PhaseLanguages:   "Store display names for the languages of the entries artifact",
	cognet.PhaseExport:      "Export the cognates table to the snapshot artifact",
	cognet.PhaseEdges:       "Build canonical edges from the corpus and the snapshot",
	cognet.PhaseLoadEdges:   "Bulk-load the edge artifact into the edges table",
}

// newRootCommand builds the command tree. Status lines and summaries go to out.
func newRootCommand(out io.Writer) *cobra.Command {
	var dryRun bool

	root := &cobra.Command{
		Use:           "cognet",
		Short:         "Build and load the CogNet cognate graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "run file phases only, skip every database phase")

	var phases []string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline phases in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), cmd.OutOrStdout(), phases, dryRun)
		},
	}
	run.Flags().StringSliceVar(&phases, "phase", nil, "comma-separated phases to run (default: all)")
	root.AddCommand(run)

	for _, phase := range cognet.Phases() {
		root.AddCommand(&cobra.Command{
			Use:   phase,
			Short: phaseHelp[phase],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runPipeline(cmd.Context(), cmd.OutOrStdout(), []string{phase}, dryRun)
			},
		})
	}

	root.AddCommand(newMigrateCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cognet %s\n", app.BuildVersion())
		},
	}
}

func runPipeline(ctx context.Context, out io.Writer, phases []string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dryRun {
		cfg.Pipeline.DryRun = true
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting cognet",
		slog.String("version", app.BuildVersion()),
		slog.Bool("dry_run", cfg.Pipeline.DryRun),
		slog.Int("batch_size", cfg.Pipeline.BatchSize),
	)

	var store cognet.CognateStore
	if !cfg.Pipeline.DryRun {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		store = cognates.New(pool, cfg.Pipeline.BatchSize, logger)
	}

	pipeline := cognet.NewPipeline(logger, store, langname.English(), cfg.Pipeline)
	start := time.Now()
	runErr := pipeline.Run(ctx, phases)

	if err := printSummary(out, pipeline.Results()); err != nil {
		logger.Warn("render summary", slog.String("error", err.Error()))
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(out, "cognet: completed %d phase(s) in %s\n", len(pipeline.Results()), time.Since(start).Round(time.Millisecond))
	return nil
}

// printSummary renders one row per executed phase in canonical order.
func printSummary(out io.Writer, results map[string]cognet.PhaseResult) error {
	if len(results) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Phase", "Emitted", "Inserted", "Skipped", "Malformed", "Duration", "Status")

	for _, phase := range cognet.Phases() {
		r, ok := results[phase]
		if !ok {
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = "failed"
		}
		if err := table.Append(
			phase,
			strconv.Itoa(r.Emitted),
			strconv.FormatInt(r.Inserted, 10),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Malformed),
			r.Duration.Round(time.Millisecond).String(),
			status,
		); err != nil {
			return err
		}
	}
	return table.Render()
}

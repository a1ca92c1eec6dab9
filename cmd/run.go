package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gurel-group/fiyat-cli/internal/engine"
	"github.com/gurel-group/fiyat-cli/pkg/sheets"
)

var (
	runDir    string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full price pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runDir != "" {
			cfg.Dir.Path = runDir
		}
		if runDryRun {
			// Neuter everything with a lasting effect, the same way plan
			// does: deletions, the sink, and the canonical workbook.
			cfg.Retention.DryRun = true
			cfg.Export.Enabled = false
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		opts := []engine.Option{engine.WithLedger(st)}
		if !cfg.Retention.DryRun && cfg.Sheets.Enabled && cfg.Sheets.SpreadsheetID != "" {
			sink, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
			if err != nil {
				return eris.Wrap(err, "init sheets client")
			}
			opts = append(opts, engine.WithSink(sink))
		}

		e, err := engine.New(cfg, opts...)
		if err != nil {
			return err
		}

		report, err := e.Run(ctx)
		var pubErr *engine.PublishError
		switch {
		case err == nil:
			zap.L().Info("run complete",
				zap.Int("unique_codes", report.UniqueCodes),
				zap.Int("deleted", len(report.Deleted)),
			)
		case errors.As(err, &pubErr):
			// Local results stand; surface the failure but still print the
			// report and exit zero so cron does not re-run a finished job.
			zap.L().Error("publish failed, local results kept", zap.Error(err))
		default:
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	runCmd.Flags().StringVar(&runDir, "dir", "", "price directory (overrides config)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "plan deletions without removing, publishing, or writing anything")
	rootCmd.AddCommand(runCmd)
}

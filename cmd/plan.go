package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gurel-group/fiyat-cli/internal/engine"
)

var planDir string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a run would extract and delete, without side effects",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planDir != "" {
			cfg.Dir.Path = planDir
		}

		// Neuter everything irreversible: no deletions, no workbook, no
		// sink, no ledger.
		cfg.Retention.DryRun = true
		cfg.Export.Enabled = false

		e, err := engine.New(cfg)
		if err != nil {
			return err
		}

		report, err := e.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%d files, %d records, %d unique codes, %d deletions planned\n",
			report.FilesFound, report.RecordsTotal, report.UniqueCodes, len(report.Deleted))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	planCmd.Flags().StringVar(&planDir, "dir", "", "price directory (overrides config)")
	rootCmd.AddCommand(planCmd)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gurel-group/fiyat-cli/internal/engine"
)

var (
	exportDir string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract and write the canonical workbook without deleting or publishing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportDir != "" {
			cfg.Dir.Path = exportDir
		}
		if exportOut != "" {
			// The engine writes next to the inputs; an explicit output path
			// just renames the reserved file.
			cfg.Dir.CanonicalOutput = exportOut
		}

		cfg.Retention.DryRun = true
		cfg.Export.Enabled = true

		e, err := engine.New(cfg)
		if err != nil {
			return err
		}

		report, err := e.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "wrote %s (%d codes from %d files)\n",
			filepath.Join(cfg.Dir.Path, cfg.Dir.CanonicalOutput),
			report.UniqueCodes, report.FilesFound)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "price directory (overrides config)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output workbook file name")
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gurel-group/fiyat-cli/internal/model"
	"github.com/gurel-group/fiyat-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect pipeline run history",
	Long:  "Commands for listing, viewing, and summarizing pipeline runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pipeline runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(status),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}

		stats := computeRunStats(runs)
		formatRunStats(os.Stdout, stats)
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by run status (done, done_publish_failed, failed, ...)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// runStats holds aggregate statistics computed from a set of runs.
type runStats struct {
	Total         int
	Done          int
	PublishFailed int
	Failed        int
	Other         int
	FilesDeleted  int
	AvgDurSecs    float64
}

func computeRunStats(runs []model.Run) runStats {
	var s runStats
	s.Total = len(runs)

	var totalDur time.Duration
	var durCount int

	for _, r := range runs {
		switch r.Status {
		case model.RunStatusDone:
			s.Done++
		case model.RunStatusPublishFailed:
			s.PublishFailed++
		case model.RunStatusFailed:
			s.Failed++
		default:
			s.Other++
		}
		if r.Status.Terminal() {
			totalDur += r.UpdatedAt.Sub(r.CreatedAt)
			durCount++
		}
		if r.Report != nil {
			s.FilesDeleted += len(r.Report.Deleted)
		}
	}

	if durCount > 0 {
		s.AvgDurSecs = totalDur.Seconds() / float64(durCount)
	}
	return s
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tFILES\tCODES\tDELETED\tCREATED")
	for _, r := range runs {
		files, codes, deleted := "-", "-", "-"
		if r.Report != nil {
			files = fmt.Sprintf("%d", r.Report.FilesFound)
			codes = fmt.Sprintf("%d", r.Report.UniqueCodes)
			deleted = fmt.Sprintf("%d", len(r.Report.Deleted))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Status, files, codes, deleted,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func formatRunStats(out io.Writer, s runStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "total runs\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "done\t%d\n", s.Done)
	_, _ = fmt.Fprintf(w, "publish failed\t%d\n", s.PublishFailed)
	_, _ = fmt.Fprintf(w, "failed\t%d\n", s.Failed)
	if s.Other > 0 {
		_, _ = fmt.Fprintf(w, "other\t%d\n", s.Other)
	}
	_, _ = fmt.Fprintf(w, "files deleted\t%d\n", s.FilesDeleted)
	_, _ = fmt.Fprintf(w, "avg duration\t%.1fs\n", s.AvgDurSecs)
	_ = w.Flush()
}

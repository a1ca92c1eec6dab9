// Package engine orchestrates a full pipeline run: inventory, extraction,
// reconciliation, cleanup, export and publish, with the run status and
// final report written to the ledger at each transition.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"

	"github.com/gurel-group/fiyat-cli/internal/config"
	"github.com/gurel-group/fiyat-cli/internal/decoder"
	"github.com/gurel-group/fiyat-cli/internal/export"
	"github.com/gurel-group/fiyat-cli/internal/extract"
	"github.com/gurel-group/fiyat-cli/internal/inventory"
	"github.com/gurel-group/fiyat-cli/internal/model"
	"github.com/gurel-group/fiyat-cli/internal/reconcile"
	"github.com/gurel-group/fiyat-cli/internal/resilience"
	"github.com/gurel-group/fiyat-cli/internal/retention"
	"github.com/gurel-group/fiyat-cli/internal/store"
	"github.com/gurel-group/fiyat-cli/pkg/sheets"
)

// Engine runs the price pipeline. Construct with New; zero value is not
// usable.
type Engine struct {
	cfg    *config.Config
	walker *extract.Walker
	policy retention.Policy
	ledger store.Store   // nil disables the ledger
	sink   sheets.Client // nil disables publishing

	now func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLedger attaches a run ledger.
func WithLedger(s store.Store) Option {
	return func(e *Engine) { e.ledger = s }
}

// WithSink attaches the remote publish sink.
func WithSink(c sheets.Client) Option {
	return func(e *Engine) { e.sink = c }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine from configuration. The supplier profile in the
// price directory, when present, overrides the configured code pattern.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	pattern := cfg.Engine.CodePattern
	profile, err := config.LoadProfile(cfg.Dir.Path)
	if err != nil {
		return nil, err
	}
	if profile.CodePattern != "" {
		pattern = profile.CodePattern
	}

	rule, err := extract.ParseCodeRule(pattern)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		walker: extract.NewWalker(rule, newChain(profile)),
		policy: retention.NewPolicy(time.Duration(cfg.Retention.HorizonDays) * 24 * time.Hour),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// newChain extends the default decoder chain with any extra delimiters
// the supplier profile declares.
func newChain(profile *config.Profile) *decoder.Chain {
	candidates := decoder.DefaultChain()
	for _, d := range profile.ExtraDelimiters {
		if len(d) != 1 {
			zap.L().Warn("profile: ignoring multi-rune delimiter", zap.String("delimiter", d))
			continue
		}
		candidates = append(candidates, decoder.Candidate{
			Name:  "utf-16/" + d,
			Enc:   unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
			Delim: rune(d[0]),
		})
	}
	return decoder.NewChain(candidates...)
}

// Run executes one full pipeline run and returns its report. The report
// is non-nil even on failure so callers can see how far the run got.
func (e *Engine) Run(ctx context.Context) (*model.RunReport, error) {
	report := &model.RunReport{
		StartedAt: e.now().UTC(),
		DryRun:    e.cfg.Retention.DryRun,
	}

	runID, err := e.openRun(ctx)
	if err != nil {
		return report, err
	}
	report.RunID = runID

	err = e.run(ctx, report)

	report.FinishedAt = e.now().UTC()
	switch {
	case err == nil:
		report.Status = model.RunStatusDone
	default:
		if _, ok := err.(*PublishError); ok {
			// Degraded success: local results stand, only the sink write
			// failed.
			report.Status = model.RunStatusPublishFailed
			report.PublishError = err.Error()
		} else {
			report.Status = model.RunStatusFailed
		}
	}
	e.closeRun(ctx, runID, report)

	return report, err
}

func (e *Engine) run(ctx context.Context, report *model.RunReport) error {
	dir := e.cfg.Dir.Path
	if e.cfg.Retention.DryRun {
		if pdfs := inventory.StrayPDFs(dir); len(pdfs) > 0 {
			zap.L().Info("dry run, keeping stray pdfs", zap.Int("count", len(pdfs)))
		}
	} else {
		e.removeStrayPDFs(dir)
	}

	// Inventory
	e.transition(ctx, report.RunID, model.RunStatusInventorying)
	listed, err := inventory.List(dir, e.cfg.Dir.CanonicalOutput)
	if err != nil {
		return err
	}
	if len(listed) == 0 {
		return ErrNoInput
	}

	files := make([]*model.SourceFile, len(listed))
	for i := range listed {
		files[i] = &listed[i]
	}
	report.FilesFound = len(files)
	zap.L().Info("inventory complete",
		zap.Int("files", len(files)),
		zap.String("newest", files[0].Name),
	)

	// Extraction, bounded by the worker count. Results land in a slice
	// indexed by file so reconciliation order stays newest-first no matter
	// which extraction finishes when.
	e.transition(ctx, report.RunID, model.RunStatusExtracting)
	extracted := make([][]model.PriceRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	workers := e.cfg.Engine.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			records, err := e.walker.Walk(f.Path)
			if err != nil {
				// A failed file is skipped, not fatal, and is shielded
				// from cleanup so nothing is deleted on a misread.
				f.Failed = true
				zap.L().Warn("extraction failed, file skipped",
					zap.String("file", f.Name),
					zap.Error(err),
				)
				return nil
			}
			f.Records = len(records)
			extracted[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Reconciliation, strictly newest-first.
	e.transition(ctx, report.RunID, model.RunStatusReconciling)
	rec := reconcile.NewStore()
	for i, f := range files {
		if f.Failed {
			report.FilesFailed++
			continue
		}
		rec.Merge(extracted[i], f)
		report.RecordsTotal += f.Records
	}
	table := rec.Table()
	report.UniqueCodes = table.Len()
	if report.RecordsTotal == 0 {
		// A directory of junk is the same as an empty one. Failing here,
		// before cleanup, also keeps the policies from deleting everything
		// on a run that extracted nothing.
		return ErrNoInput
	}

	for _, f := range files {
		outcome := model.FileOutcome{
			Name:     f.Name,
			Records:  f.Records,
			NewCodes: f.NewCodes,
			Failed:   f.Failed,
		}
		report.Files = append(report.Files, outcome)
	}
	zap.L().Info("reconciliation complete",
		zap.Int("records", report.RecordsTotal),
		zap.Int("unique_codes", report.UniqueCodes),
	)

	// Cleanup
	e.transition(ctx, report.RunID, model.RunStatusCleaningUp)
	plan := e.policy.Plan(files, e.now())
	if e.cfg.Retention.DryRun {
		report.Deleted = plan
		zap.L().Info("dry run, skipping deletions", zap.Int("planned", len(plan)))
	} else {
		report.Deleted = e.policy.Apply(plan, e.now().UTC())
		if e.ledger != nil && len(report.Deleted) > 0 {
			if err := e.ledger.RecordDeletions(ctx, report.RunID, report.Deleted); err != nil {
				zap.L().Warn("ledger: recording deletions failed", zap.Error(err))
			}
		}
	}

	// Local export
	if e.cfg.Export.Enabled {
		out := filepath.Join(dir, e.cfg.Dir.CanonicalOutput)
		if err := export.Write(out, table); err != nil {
			return err
		}
		report.Exported = true
		zap.L().Info("canonical workbook written", zap.String("path", out))
	}

	// Publish. A dry run never touches the sink: the remote sheet replace
	// is as irreversible as a deletion.
	if e.sink != nil && e.cfg.Retention.DryRun {
		zap.L().Info("dry run, skipping publish")
	}
	if e.sink != nil && !e.cfg.Retention.DryRun {
		e.transition(ctx, report.RunID, model.RunStatusPublishing)
		values := export.Rows(table)
		err := resilience.Do(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
			return e.sink.ReplaceSheet(ctx, e.cfg.Sheets.SheetName, values)
		})
		if err != nil {
			return &PublishError{Err: err}
		}
		report.Published = true
		zap.L().Info("published to sheet",
			zap.String("sheet", e.cfg.Sheets.SheetName),
			zap.Int("rows", len(values)),
		)
	}

	return nil
}

// removeStrayPDFs clears PDFs out of the price directory. They cannot be
// ingested and only accumulate.
func (e *Engine) removeStrayPDFs(dir string) {
	for _, pdf := range inventory.StrayPDFs(dir) {
		if err := os.Remove(pdf); err != nil {
			zap.L().Warn("stray pdf removal failed", zap.String("path", pdf), zap.Error(err))
			continue
		}
		zap.L().Info("removed stray pdf", zap.String("path", pdf))
	}
}

func (e *Engine) openRun(ctx context.Context) (string, error) {
	if e.ledger == nil {
		return "", nil
	}
	run, err := e.ledger.CreateRun(ctx)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// transition records a status change in the ledger. Ledger write failures
// are logged, never fatal: the pipeline outranks its bookkeeping.
func (e *Engine) transition(ctx context.Context, runID string, status model.RunStatus) {
	zap.L().Debug("run transition", zap.String("status", string(status)))
	if e.ledger == nil || runID == "" {
		return
	}
	if err := e.ledger.UpdateRunStatus(ctx, runID, status); err != nil {
		zap.L().Warn("ledger: status update failed",
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func (e *Engine) closeRun(ctx context.Context, runID string, report *model.RunReport) {
	if e.ledger == nil || runID == "" {
		return
	}
	if err := e.ledger.CompleteRun(ctx, runID, report); err != nil {
		zap.L().Warn("ledger: completing run failed", zap.Error(err))
	}
}

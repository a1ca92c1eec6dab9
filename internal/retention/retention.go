// Package retention decides which input files to remove after a run:
// files past the age horizon (regardless of usefulness) and files that
// contributed nothing to the reconciled table.
package retention

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

// DefaultHorizon is roughly seven months, matching how long supplier
// price lists stay relevant.
const DefaultHorizon = 210 * 24 * time.Hour

// Policy plans and applies file deletions. Planning is pure so callers
// can inspect (or dry-run) the plan before anything irreversible happens.
type Policy struct {
	Horizon time.Duration
}

// NewPolicy creates a Policy; a non-positive horizon uses DefaultHorizon.
func NewPolicy(horizon time.Duration) Policy {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return Policy{Horizon: horizon}
}

// Plan returns the deletions this run calls for, expired files first and
// useless ones after. A file appears at most once: expiry takes
// precedence, and files whose extraction failed are never planned. They
// were skipped, not judged.
func (p Policy) Plan(files []*model.SourceFile, now time.Time) []model.Deletion {
	cutoff := now.Add(-p.Horizon)
	planned := make(map[string]bool, len(files))

	var plan []model.Deletion
	for _, f := range files {
		if f.Failed {
			continue
		}
		if f.EffectiveTime.Before(cutoff) {
			plan = append(plan, model.Deletion{Path: f.Path, Reason: model.DeleteReasonExpired})
			planned[f.Path] = true
		}
	}
	for _, f := range files {
		if f.Failed || planned[f.Path] {
			continue
		}
		if f.Useless() {
			plan = append(plan, model.Deletion{Path: f.Path, Reason: model.DeleteReasonUseless})
		}
	}
	return plan
}

// Apply removes the planned files and returns the deletions that actually
// happened, stamped with the removal time. Deletion is irreversible, so
// every removal is logged with its path and reason; per-file failures are
// logged and skipped.
func (p Policy) Apply(plan []model.Deletion, now time.Time) []model.Deletion {
	var done []model.Deletion
	for _, d := range plan {
		if err := os.Remove(d.Path); err != nil {
			zap.L().Warn("retention: delete failed",
				zap.String("path", d.Path),
				zap.String("reason", string(d.Reason)),
				zap.Error(err),
			)
			continue
		}
		d.DeletedAt = now
		done = append(done, d)
		zap.L().Info("retention: deleted file",
			zap.String("path", d.Path),
			zap.String("reason", string(d.Reason)),
		)
	}
	return done
}

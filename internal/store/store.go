// Package store persists the run ledger: run outcomes and the log of
// irreversible file deletions. Two drivers exist, sqlite for the default
// single-machine setup and postgres for shared installations.
package store

import (
	"context"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the ledger persistence interface.
type Store interface {
	CreateRun(ctx context.Context) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, report *model.RunReport) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	RecordDeletions(ctx context.Context, runID string, deletions []model.Deletion) error

	Migrate(ctx context.Context) error
	Close() error
}

package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusIdle         RunStatus = "idle"
	RunStatusInventorying RunStatus = "inventorying"
	RunStatusExtracting   RunStatus = "extracting"
	RunStatusReconciling  RunStatus = "reconciling"
	RunStatusCleaningUp   RunStatus = "cleaning_up"
	RunStatusPublishing   RunStatus = "publishing"
	RunStatusDone         RunStatus = "done"
	// RunStatusPublishFailed is the degraded-success terminal state: local
	// extraction and reconciliation succeeded but the sink write failed.
	RunStatusPublishFailed RunStatus = "done_publish_failed"
	RunStatusFailed        RunStatus = "failed"
)

// Terminal reports whether the status is a terminal state.
func (s RunStatus) Terminal() bool {
	return s == RunStatusDone || s == RunStatusPublishFailed || s == RunStatusFailed
}

// DeleteReason says why a file was removed.
type DeleteReason string

const (
	// DeleteReasonExpired marks files older than the retention horizon.
	DeleteReasonExpired DeleteReason = "expired"
	// DeleteReasonUseless marks files that contributed zero new codes.
	DeleteReasonUseless DeleteReason = "useless"
)

// Deletion is one planned or executed file removal.
type Deletion struct {
	Path      string       `json:"path"`
	Reason    DeleteReason `json:"reason"`
	DeletedAt time.Time    `json:"deleted_at,omitempty"`
}

// FileOutcome is the per-file result line of a run report.
type FileOutcome struct {
	Name     string `json:"name"`
	Records  int    `json:"records"`
	NewCodes int    `json:"new_codes"`
	Failed   bool   `json:"failed,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Run is one ledger entry: a pipeline run and its final report. The
// reconciled table itself is run-owned and never persisted; the ledger
// keeps outcomes and the irreversible deletion log only.
type Run struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	Report    *RunReport `json:"report,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunReport is the structured outcome of one pipeline run.
type RunReport struct {
	RunID        string        `json:"run_id"`
	Status       RunStatus     `json:"status"`
	FilesFound   int           `json:"files_found"`
	FilesFailed  int           `json:"files_failed"`
	RecordsTotal int           `json:"records_total"`
	UniqueCodes  int           `json:"unique_codes"`
	Deleted      []Deletion    `json:"deleted,omitempty"`
	DryRun       bool          `json:"dry_run,omitempty"`
	Published    bool          `json:"published"`
	Exported     bool          `json:"exported"`
	PublishError string        `json:"publish_error,omitempty"`
	Files        []FileOutcome `json:"files,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
}

package model

import "time"

// TimeSource identifies where a file's effective timestamp came from.
type TimeSource string

const (
	// TimeSourceDocProps means the workbook's embedded "last modified"
	// document property was used.
	TimeSourceDocProps TimeSource = "docprops"
	// TimeSourceMtime means the filesystem modification time was used.
	TimeSourceMtime TimeSource = "mtime"
)

// SourceFile is one candidate input file for a run. The counters are owned
// by the run: NewCodes is reset at inventory time and updated only by the
// reconciliation store.
type SourceFile struct {
	Path          string
	Name          string
	EffectiveTime time.Time
	TimeSource    TimeSource

	// Extraction outcome, filled during the run.
	Records  int  // records extracted from this file
	NewCodes int  // codes this file contributed first
	Failed   bool // extraction failed; shields the file from deletion
}

// Useless reports whether the file contributed nothing to the reconciled
// table. Failed files are not useless; they were never fully read.
func (f *SourceFile) Useless() bool {
	return !f.Failed && f.NewCodes == 0
}

// Package reconcile accumulates extracted records into the reconciled
// table and tracks which source files actually contributed.
package reconcile

import (
	"github.com/gurel-group/fiyat-cli/internal/model"
)

// Store reconciles records across files. Files must be merged in
// newest-first order: the first record seen for a code wins whole, with
// no field-level merging, so processing order is the recency rule.
type Store struct {
	table *model.Table
}

// NewStore creates an empty reconciliation store.
func NewStore() *Store {
	return &Store{table: model.NewTable()}
}

// Merge inserts the file's records into the table. Codes already present
// are discarded; each first-seen code increments the file's NewCodes
// counter. After the merge a file with zero new codes is useless and a
// candidate for cleanup.
func (s *Store) Merge(records []model.PriceRecord, file *model.SourceFile) {
	for _, rec := range records {
		if s.table.Insert(rec) {
			file.NewCodes++
		}
	}
}

// Table returns the reconciled table.
func (s *Store) Table() *model.Table {
	return s.table
}

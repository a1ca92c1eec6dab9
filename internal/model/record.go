package model

// PriceRecord is one reconciled price row for a single SAP code.
//
// Toptan is the minimum plausible value found in the source row, Liste the
// maximum, and Perakende the value positionally adjacent to the toptan
// column (with a rank-based fallback). Because perakende is positional,
// Toptan <= Perakende does NOT hold in general; that is documented source
// behavior, not a bug to fix here.
type PriceRecord struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Toptan    int    `json:"toptan"`
	Perakende int    `json:"perakende"`
	Liste     int    `json:"liste"`
	Source    string `json:"source"` // base name of the originating file
}

// Table is the reconciled code -> record mapping. Insertion order is
// preserved because it determines the published row order. At most one
// record per code; once inserted a record is immutable for the run.
type Table struct {
	byCode map[string]PriceRecord
	order  []string
}

// NewTable creates an empty reconciled table.
func NewTable() *Table {
	return &Table{byCode: make(map[string]PriceRecord)}
}

// Insert adds rec if its code is not yet present and reports whether the
// code was new. Existing entries are never replaced.
func (t *Table) Insert(rec PriceRecord) bool {
	if _, ok := t.byCode[rec.Code]; ok {
		return false
	}
	t.byCode[rec.Code] = rec
	t.order = append(t.order, rec.Code)
	return true
}

// Get returns the record for code, if present.
func (t *Table) Get(code string) (PriceRecord, bool) {
	rec, ok := t.byCode[code]
	return rec, ok
}

// Len returns the number of reconciled records.
func (t *Table) Len() int {
	return len(t.order)
}

// Records returns all records in insertion order.
func (t *Table) Records() []PriceRecord {
	out := make([]PriceRecord, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.byCode[code])
	}
	return out
}

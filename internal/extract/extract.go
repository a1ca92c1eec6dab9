package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

// minToptan is the noise floor: rows whose minimum value is below this are
// incidental small numbers (quantities, column counts), not tiered prices.
const minToptan = 100

type candidate struct {
	col int
	val int
}

// ExtractRecord derives a price record from a row given the detected code
// column, or rejects the row. The tier assignment is heuristic:
//
//   - toptan is the minimum value right of the code; its column is the
//     first (in column order) holding that value
//   - perakende is the value in the column immediately right of toptan's,
//     falling back to the second-smallest value when that column holds no
//     number
//   - liste is the maximum value
//
// Source is left empty; the walker stamps it with the originating file.
func ExtractRecord(row []string, codeIdx int, rule CodeRule) (model.PriceRecord, bool) {
	rec := model.PriceRecord{Code: strings.TrimSpace(row[codeIdx])}

	// Name: the cell immediately right of the code, unless it is itself a
	// code or reads as a plain number. Comma-decimal values deliberately
	// fail this check and fall through to the name, matching how the
	// supplier exports label their rows.
	if codeIdx+1 < len(row) {
		next := strings.TrimSpace(row[codeIdx+1])
		if next != "" && !rule.Match(next) {
			if _, err := strconv.ParseFloat(next, 64); err != nil {
				rec.Name = next
			}
		}
	}

	var cands []candidate
	for col := codeIdx + 1; col < len(row); col++ {
		if v, ok := parsePrice(row[col]); ok {
			cands = append(cands, candidate{col: col, val: v})
		}
	}
	if len(cands) < 2 {
		return model.PriceRecord{}, false
	}

	// Strict less keeps the leftmost column on ties.
	toptan := cands[0]
	for _, c := range cands[1:] {
		if c.val < toptan.val {
			toptan = c
		}
	}

	perakende, perakendeOK := 0, false
	for _, c := range cands {
		if c.col == toptan.col+1 {
			perakende, perakendeOK = c.val, true
			break
		}
	}
	if !perakendeOK {
		vals := make([]int, len(cands))
		for i, c := range cands {
			vals[i] = c.val
		}
		sort.Ints(vals)
		perakende, perakendeOK = vals[1], true
	}

	liste := cands[0].val
	for _, c := range cands[1:] {
		if c.val > liste {
			liste = c.val
		}
	}

	if toptan.val < minToptan {
		return model.PriceRecord{}, false
	}
	if !perakendeOK {
		return model.PriceRecord{}, false
	}

	rec.Toptan = toptan.val
	rec.Perakende = perakende
	rec.Liste = liste
	return rec, true
}

// scanRows applies DetectCode + ExtractRecord to every row and collects
// the accepted records.
func scanRows(rows [][]string, rule CodeRule) []model.PriceRecord {
	var out []model.PriceRecord
	for _, row := range rows {
		idx, ok := DetectCode(row, rule)
		if !ok {
			continue
		}
		if rec, ok := ExtractRecord(row, idx, rule); ok {
			out = append(out, rec)
		}
	}
	return out
}

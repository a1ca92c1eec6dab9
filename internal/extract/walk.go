package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gurel-group/fiyat-cli/internal/decoder"
	"github.com/gurel-group/fiyat-cli/internal/model"
)

// Walker extracts price records from a single input file, dispatching on
// extension: workbooks go through excelize, flat delimited exports through
// the decoder chain.
type Walker struct {
	rule  CodeRule
	chain *decoder.Chain
}

// NewWalker creates a Walker with the given code rule and decoder chain.
// A nil chain uses the default candidates.
func NewWalker(rule CodeRule, chain *decoder.Chain) *Walker {
	if chain == nil {
		chain = decoder.NewChain()
	}
	return &Walker{rule: rule, chain: chain}
}

// Walk extracts all price records from the file at path. An error means
// the whole file was unreadable; the caller decides what to do with the
// file (it is never deleted here).
func (w *Walker) Walk(path string) ([]model.PriceRecord, error) {
	var records []model.PriceRecord
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = w.walkWorkbook(path)
	case ".csv", ".txt":
		records, err = w.walkDelimited(path)
	default:
		return nil, eris.Errorf("extract: unsupported file type %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	for i := range records {
		records[i].Source = source
	}
	return records, nil
}

// walkWorkbook scans every sheet of a workbook. A sheet that fails to read
// is logged and skipped; only a failure to open the workbook fails the file.
func (w *Walker) walkWorkbook(path string) ([]model.PriceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: open workbook %s", filepath.Base(path))
	}
	defer f.Close()

	var records []model.PriceRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			zap.L().Warn("extract: sheet unreadable, skipping",
				zap.String("file", filepath.Base(path)),
				zap.String("sheet", sheet),
				zap.Error(err),
			)
			continue
		}
		records = append(records, scanRows(rows, w.rule)...)
	}
	return records, nil
}

func (w *Walker) walkDelimited(path string) ([]model.PriceRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read %s", filepath.Base(path))
	}
	rows, err := w.chain.Decode(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: decode %s", filepath.Base(path))
	}
	return scanRows(rows, w.rule), nil
}

// Package export writes the reconciled price table to the canonical
// local workbook.
package export

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

// Header is the column layout of the canonical workbook.
var Header = []string{"SAP Kodu", "Malzeme Adı", "TOPTAN", "PERAKENDE", "LISTE", "DOSYA"}

// SheetName is the sheet the canonical workbook carries its data on.
const SheetName = "Fiyat"

// Write renders the table into an xlsx workbook at path. The file is
// written to a temp sibling and renamed so a crashed run never leaves
// a half-written canonical workbook behind.
func Write(path string, table *model.Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Header {
		header.AddCell().SetString(col)
	}

	for _, rec := range table.Records() {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.Code)
		row.AddCell().SetString(rec.Name)
		row.AddCell().SetInt(rec.Toptan)
		row.AddCell().SetInt(rec.Perakende)
		row.AddCell().SetInt(rec.Liste)
		row.AddCell().SetString(rec.Source)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fiyat-*.xlsx")
	if err != nil {
		return eris.Wrap(err, "export: create temp file")
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return eris.Wrap(err, "export: write workbook")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return eris.Wrap(err, "export: close temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return eris.Wrap(err, "export: rename into place")
	}
	return nil
}

// Rows flattens the table into sheet values, header first. The same
// shape feeds both the local workbook and the remote sheet.
func Rows(table *model.Table) [][]any {
	rows := make([][]any, 0, table.Len()+1)

	header := make([]any, len(Header))
	for i, col := range Header {
		header[i] = col
	}
	rows = append(rows, header)

	for _, rec := range table.Records() {
		rows = append(rows, []any{
			rec.Code, rec.Name, rec.Toptan, rec.Perakende, rec.Liste, rec.Source,
		})
	}
	return rows
}

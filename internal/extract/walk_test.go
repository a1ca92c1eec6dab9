package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
)

func writeWorkbookFixture(t *testing.T, path string, sheets map[string][][]string) {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, cells := range rows {
			row := sheet.AddRow()
			for _, c := range cells {
				row.AddCell().SetString(c)
			}
		}
	}
	require.NoError(t, f.Save(path))
}

func TestWalk_Workbook_AllSheetsScanned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liste.xlsx")
	writeWorkbookFixture(t, path, map[string][][]string{
		"Toptan": {
			{"3000000001", "Kablo", "500", "650", "900"},
		},
		"Perakende": {
			{"baslik", ""},
			{"3000000002", "Priz", "120", "150", "200"},
		},
	})

	w := NewWalker(CodeRuleFixed10, nil)
	records, err := w.Walk(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, "liste.xlsx", rec.Source)
	}
}

func TestWalk_Delimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiyat.txt")
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("3000000001\tKablo\t500\t650\t900\n"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	w := NewWalker(CodeRuleFixed10, nil)
	records, err := w.Walk(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fiyat.txt", records[0].Source)
	assert.Equal(t, 500, records[0].Toptan)
}

func TestWalk_CorruptWorkbookFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bozuk.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	w := NewWalker(CodeRuleFixed10, nil)
	_, err := w.Walk(path)
	require.Error(t, err)
}

func TestWalk_UnsupportedExtension(t *testing.T) {
	w := NewWalker(CodeRuleFixed10, nil)
	_, err := w.Walk("liste.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

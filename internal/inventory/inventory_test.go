package inventory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

const canonical = "Fiyat_Listesi.xlsx"

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestList_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, filepath.Join(dir, "orta.txt"), now.Add(-2*time.Hour))
	touch(t, filepath.Join(dir, "yeni.csv"), now.Add(-1*time.Hour))
	touch(t, filepath.Join(dir, "eski.txt"), now.Add(-3*time.Hour))
	touch(t, filepath.Join(dir, "notlar.docx"), now) // not an input type
	touch(t, filepath.Join(dir, canonical), now)     // reserved output
	require.NoError(t, os.Mkdir(filepath.Join(dir, "arsiv"), 0o755))

	files, err := List(dir, canonical)
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "yeni.csv", files[0].Name)
	assert.Equal(t, "orta.txt", files[1].Name)
	assert.Equal(t, "eski.txt", files[2].Name)
	assert.Equal(t, model.TimeSourceMtime, files[0].TimeSource)
}

func TestList_CanonicalExclusionIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "FIYAT_LISTESI.XLSX"), time.Now())
	touch(t, filepath.Join(dir, "girdi.txt"), time.Now())

	files, err := List(dir, canonical)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "girdi.txt", files[0].Name)
}

func TestList_TieBreakByName(t *testing.T) {
	dir := t.TempDir()
	ts := time.Now().Add(-time.Hour).Truncate(time.Second)

	touch(t, filepath.Join(dir, "b_liste.txt"), ts)
	touch(t, filepath.Join(dir, "a_liste.txt"), ts)

	files, err := List(dir, canonical)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a_liste.txt", files[0].Name)
	assert.Equal(t, "b_liste.txt", files[1].Name)
}

func TestList_WorkbookPrefersDocProps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "liste.xlsx")

	embedded := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f := excelize.NewFile()
	require.NoError(t, f.SetDocProps(&excelize.DocProperties{
		Modified: embedded.Format(time.RFC3339),
	}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	// The filesystem says "now"; the embedded property must win.
	files, err := List(dir, canonical)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.TimeSourceDocProps, files[0].TimeSource)
	assert.True(t, files[0].EffectiveTime.Equal(embedded))
}

func TestList_CorruptWorkbookFallsBackToMtime(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	touch(t, filepath.Join(dir, "bozuk.xlsx"), mtime)

	files, err := List(dir, canonical)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.TimeSourceMtime, files[0].TimeSource)
	assert.True(t, files[0].EffectiveTime.Equal(mtime))
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "yok"), canonical)
	require.Error(t, err)
}

func TestStrayPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "katalog.pdf"), time.Now())
	touch(t, filepath.Join(dir, "liste.txt"), time.Now())

	pdfs := StrayPDFs(dir)
	require.Len(t, pdfs, 1)
	assert.Equal(t, filepath.Join(dir, "katalog.pdf"), pdfs[0])
}

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

func rec(code string, toptan int, source string) model.PriceRecord {
	return model.PriceRecord{Code: code, Toptan: toptan, Source: source}
}

func TestMerge_FirstFileWinsPerCode(t *testing.T) {
	s := NewStore()
	newer := &model.SourceFile{Name: "yeni.txt"}
	older := &model.SourceFile{Name: "eski.txt"}

	s.Merge([]model.PriceRecord{rec("3000000001", 500, "yeni.txt")}, newer)
	s.Merge([]model.PriceRecord{
		rec("3000000001", 400, "eski.txt"),
		rec("3000000002", 120, "eski.txt"),
	}, older)

	table := s.Table()
	assert.Equal(t, 2, table.Len())

	got, ok := table.Get("3000000001")
	require.True(t, ok)
	assert.Equal(t, 500, got.Toptan)
	assert.Equal(t, "yeni.txt", got.Source)
}

func TestMerge_TracksNewCodes(t *testing.T) {
	s := NewStore()
	first := &model.SourceFile{Name: "a.txt"}
	second := &model.SourceFile{Name: "b.txt"}

	s.Merge([]model.PriceRecord{
		rec("3000000001", 500, "a.txt"),
		rec("3000000002", 120, "a.txt"),
	}, first)
	s.Merge([]model.PriceRecord{
		rec("3000000001", 400, "b.txt"), // duplicate, contributes nothing
	}, second)

	assert.Equal(t, 2, first.NewCodes)
	assert.Equal(t, 0, second.NewCodes)
	assert.False(t, first.Useless())
	assert.True(t, second.Useless())
}

func TestMerge_DuplicateWithinFileCountsOnce(t *testing.T) {
	s := NewStore()
	f := &model.SourceFile{Name: "a.txt"}

	s.Merge([]model.PriceRecord{
		rec("3000000001", 500, "a.txt"),
		rec("3000000001", 450, "a.txt"),
	}, f)

	assert.Equal(t, 1, f.NewCodes)
	got, _ := s.Table().Get("3000000001")
	assert.Equal(t, 500, got.Toptan) // first occurrence kept
}

func TestTable_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	f := &model.SourceFile{Name: "a.txt"}
	s.Merge([]model.PriceRecord{
		rec("3000000003", 300, "a.txt"),
		rec("3000000001", 100, "a.txt"),
		rec("3000000002", 200, "a.txt"),
	}, f)

	records := s.Table().Records()
	require.Len(t, records, 3)
	assert.Equal(t, "3000000003", records[0].Code)
	assert.Equal(t, "3000000001", records[1].Code)
	assert.Equal(t, "3000000002", records[2].Code)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_CreateAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusIdle, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, model.RunStatusIdle, got.Status)
	assert.Nil(t, got.Report)
}

func TestSQLite_GetRun_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_UpdateRunStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.UpdateRunStatus(ctx, run.ID, model.RunStatusExtracting))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusExtracting, got.Status)
}

func TestSQLite_UpdateRunStatus_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunStatus(context.Background(), "no-such-run", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_CompleteRun_RoundTripsReport(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)

	report := &model.RunReport{
		RunID:        run.ID,
		Status:       model.RunStatusDone,
		FilesFound:   3,
		FilesFailed:  1,
		RecordsTotal: 42,
		UniqueCodes:  40,
		StartedAt:    time.Now().UTC().Add(-time.Minute),
		FinishedAt:   time.Now().UTC(),
	}
	require.NoError(t, st.CompleteRun(ctx, run.ID, report))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusDone, got.Status)
	require.NotNil(t, got.Report)
	assert.Equal(t, 3, got.Report.FilesFound)
	assert.Equal(t, 40, got.Report.UniqueCodes)
}

func TestSQLite_ListRuns_FilterAndOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateRun(ctx)
	require.NoError(t, err)
	b, err := st.CreateRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.UpdateRunStatus(ctx, a.ID, model.RunStatusFailed))
	require.NoError(t, st.UpdateRunStatus(ctx, b.ID, model.RunStatusDone))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, a.ID, failed[0].ID)

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_RecordDeletions(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)

	now := time.Now().UTC()
	err = st.RecordDeletions(ctx, run.ID, []model.Deletion{
		{Path: "/prices/old.xlsx", Reason: model.DeleteReasonExpired, DeletedAt: now},
		{Path: "/prices/noise.txt", Reason: model.DeleteReasonUseless, DeletedAt: now},
	})
	require.NoError(t, err)

	var count int
	row := st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deletions WHERE run_id = ?`, run.ID)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)
}

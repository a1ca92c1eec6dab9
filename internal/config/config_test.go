package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir.Path)
	assert.Equal(t, "Fiyat_Listesi.xlsx", cfg.Dir.CanonicalOutput)
	assert.Equal(t, "fixed10", cfg.Engine.CodePattern)
	assert.Equal(t, 1, cfg.Engine.Workers)
	assert.Equal(t, 210, cfg.Retention.HorizonDays)
	assert.False(t, cfg.Retention.DryRun)
	assert.Equal(t, "Fiyat", cfg.Sheets.SheetName)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIYAT_DIR_PATH", "/srv/fiyatlar")
	t.Setenv("FIYAT_ENGINE_WORKERS", "4")
	t.Setenv("FIYAT_RETENTION_DRY_RUN", "true")
	t.Setenv("FIYAT_SHEETS_SPREADSHEET_ID", "abc123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/fiyatlar", cfg.Dir.Path)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.True(t, cfg.Retention.DryRun)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
}

func TestLoadProfile_Missing(t *testing.T) {
	p, err := LoadProfile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, p.CodePattern)
	assert.Empty(t, p.ExtraDelimiters)
}

func TestLoadProfile_Parses(t *testing.T) {
	dir := t.TempDir()
	content := "code_pattern: prefix3\nextra_delimiters:\n  - \"|\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProfileFileName), []byte(content), 0o644))

	p, err := LoadProfile(dir)
	require.NoError(t, err)
	assert.Equal(t, "prefix3", p.CodePattern)
	assert.Equal(t, []string{"|"}, p.ExtraDelimiters)
}

func TestLoadProfile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProfileFileName), []byte(":\n\t bad"), 0o644))

	_, err := LoadProfile(dir)
	require.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "console"}))
	require.Error(t, InitLogger(LogConfig{Level: "loud", Format: "json"}))
}

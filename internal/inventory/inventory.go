// Package inventory discovers candidate input files and resolves their
// effective timestamps, which drive reconciliation order and retention.
package inventory

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gurel-group/fiyat-cli/internal/model"
)

// inputExts is the input file-type filter. The reserved canonical output
// name is excluded separately.
var inputExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".txt":  true,
}

// List returns the candidate input files in dir, newest first by effective
// timestamp. Workbooks prefer their embedded last-modified document
// property; anything else (and workbooks without one) falls back to the
// filesystem modification time. Ties are broken by ascending file name so
// reconciliation stays deterministic under equal timestamps. The canonical
// output file is never listed, which keeps the engine from re-ingesting
// its own output.
func List(dir, canonical string) ([]model.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "inventory: read directory %s", dir)
	}

	var files []model.SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !inputExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if strings.EqualFold(name, canonical) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, name)
		ts, source := effectiveTime(path, info.ModTime())
		files = append(files, model.SourceFile{
			Path:          path,
			Name:          name,
			EffectiveTime: ts,
			TimeSource:    source,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].EffectiveTime.Equal(files[j].EffectiveTime) {
			return files[i].EffectiveTime.After(files[j].EffectiveTime)
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// effectiveTime resolves a file's timestamp: the workbook's modified
// document property when present and parseable, else mtime. Resolution
// failures are never fatal.
func effectiveTime(path string, mtime time.Time) (time.Time, model.TimeSource) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return mtime, model.TimeSourceMtime
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return mtime, model.TimeSourceMtime
	}
	defer f.Close()

	props, err := f.GetDocProps()
	if err != nil || props.Modified == "" {
		return mtime, model.TimeSourceMtime
	}
	ts, err := time.Parse(time.RFC3339, props.Modified)
	if err != nil {
		zap.L().Debug("inventory: unparseable docprops timestamp",
			zap.String("file", filepath.Base(path)),
			zap.String("modified", props.Modified),
		)
		return mtime, model.TimeSourceMtime
	}
	return ts, model.TimeSourceDocProps
}

// StrayPDFs lists PDF files in dir. The price directory collects PDFs the
// engine cannot ingest; the orchestrator removes them before a run.
func StrayPDFs(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil
	}
	return matches
}

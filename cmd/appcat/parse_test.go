package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/appcat"
	main "github.com/fwojciec/appcat/cmd/appcat"
	"github.com/fwojciec/appcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes extracted records with the chosen layout", func(t *testing.T) {
		t.Parallel()

		export := writeFile(t, "export.html", "<app-details>")
		extractor := &mock.ExportExtractor{
			ExtractFn: func(_ context.Context, markup string) (*appcat.ExportResult, error) {
				assert.Equal(t, "<app-details>", markup)
				return &appcat.ExportResult{
					Records: []*appcat.Record{
						{Name: "CleanMyMac", Platforms: "Mac"},
						{Name: "Bartender", Platforms: "Mac"},
					},
					Candidates: 3,
					Skipped:    []appcat.Skip{{Index: 1, Reason: "missing or misplaced required attributes"}},
				}, nil
			},
		}

		var gotPath string
		var gotLayout appcat.Layout
		var gotRecords []*appcat.Record
		writer := &mock.CatalogWriter{
			WriteRecordsFn: func(_ context.Context, path string, layout appcat.Layout, records []*appcat.Record) error {
				gotPath, gotLayout, gotRecords = path, layout, records
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Extractor: extractor,
			Writer:    writer,
		}

		cmd := &main.ParseCmd{File: export, Output: "out.csv", Layout: "minimal"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "out.csv", gotPath)
		assert.Equal(t, appcat.LayoutMinimal, gotLayout)
		require.Len(t, gotRecords, 2)
		assert.Contains(t, stdout.String(), "Extracted 2 of 3 apps (1 skipped)")
		assert.Contains(t, stdout.String(), "Wrote 2 records to out.csv")
	})

	t.Run("missing export file is not found", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ParseCmd{File: filepath.Join(t.TempDir(), "missing.html"), Output: "out.csv"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, appcat.ENOTFOUND, appcat.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("zero records writes nothing", func(t *testing.T) {
		t.Parallel()

		export := writeFile(t, "export.html", "<html></html>")
		written := false
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Extractor: &mock.ExportExtractor{
				ExtractFn: func(_ context.Context, _ string) (*appcat.ExportResult, error) {
					return &appcat.ExportResult{}, nil
				},
			},
			Writer: &mock.CatalogWriter{
				WriteRecordsFn: func(_ context.Context, _ string, _ appcat.Layout, _ []*appcat.Record) error {
					written = true
					return nil
				},
			},
		}

		cmd := &main.ParseCmd{File: export, Output: "out.csv", Layout: "minimal"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
		assert.False(t, written)
	})

	t.Run("stores a snapshot when a database is configured", func(t *testing.T) {
		t.Parallel()

		export := writeFile(t, "export.html", "<app-details>")
		var stored *appcat.Snapshot
		snapshots := &mock.SnapshotService{
			CreateSnapshotFn: func(_ context.Context, snap *appcat.Snapshot, records []*appcat.Record) error {
				snap.ID = "snap-1"
				snap.RecordCount = len(records)
				stored = snap
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Extractor: &mock.ExportExtractor{
				ExtractFn: func(_ context.Context, _ string) (*appcat.ExportResult, error) {
					return &appcat.ExportResult{Records: []*appcat.Record{{Name: "Yoink"}}, Candidates: 1}, nil
				},
			},
			Writer: &mock.CatalogWriter{
				WriteRecordsFn: func(_ context.Context, _ string, _ appcat.Layout, _ []*appcat.Record) error {
					return nil
				},
			},
			Snapshots: snapshots,
		}

		cmd := &main.ParseCmd{File: export, Output: "out.csv", Layout: "full"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "parse", stored.Label)
		assert.Equal(t, export, stored.Source)
		assert.Equal(t, 1, stored.RecordCount)
		assert.Contains(t, stdout.String(), "Saved snapshot snap-1")
	})

	t.Run("write failure is reported", func(t *testing.T) {
		t.Parallel()

		export := writeFile(t, "export.html", "<app-details>")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Extractor: &mock.ExportExtractor{
				ExtractFn: func(_ context.Context, _ string) (*appcat.ExportResult, error) {
					return &appcat.ExportResult{Records: []*appcat.Record{{Name: "Yoink"}}, Candidates: 1}, nil
				},
			},
			Writer: &mock.CatalogWriter{
				WriteRecordsFn: func(_ context.Context, _ string, _ appcat.Layout, _ []*appcat.Record) error {
					return appcat.Errorf(appcat.EINVALID, "unknown layout %q", "wide")
				},
			},
		}

		cmd := &main.ParseCmd{File: export, Output: "out.csv", Layout: "wide"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "unknown layout")
	})
}

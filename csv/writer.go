package csv

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/fs"
)

var _ appcat.CatalogWriter = (*Writer)(nil)

// Writer implements appcat.CatalogWriter. Files are written through a
// temporary sibling and renamed into place, so the destination holds
// either the previous content or the complete new catalog.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRecords writes records under a header row for layout. Lines end in
// CRLF.
func (w *Writer) WriteRecords(ctx context.Context, path string, layout appcat.Layout, records []*appcat.Record) (err error) {
	cols, err := columns(layout)
	if err != nil {
		return err
	}
	if path == "" {
		return appcat.Errorf(appcat.EINVALID, "output path required")
	}

	af := fs.NewAtomicFile(path)
	f, err := af.Create()
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = af.Abort()
		}
	}()

	cw := csv.NewWriter(f)
	cw.UseCRLF = true

	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = headers[c]
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, c := range cols {
			row[i] = get(r, c)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %q: %w", r.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	if err := af.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}

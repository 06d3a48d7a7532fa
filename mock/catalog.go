package mock

import (
	"context"

	"github.com/fwojciec/appcat"
)

var _ appcat.CatalogWriter = (*CatalogWriter)(nil)

// CatalogWriter is a mock implementation of appcat.CatalogWriter.
type CatalogWriter struct {
	WriteRecordsFn func(ctx context.Context, path string, layout appcat.Layout, records []*appcat.Record) error
}

func (w *CatalogWriter) WriteRecords(ctx context.Context, path string, layout appcat.Layout, records []*appcat.Record) error {
	return w.WriteRecordsFn(ctx, path, layout, records)
}

var _ appcat.CatalogReader = (*CatalogReader)(nil)

// CatalogReader is a mock implementation of appcat.CatalogReader.
type CatalogReader struct {
	ReadRecordsFn func(ctx context.Context, path string) ([]*appcat.Record, error)
}

func (r *CatalogReader) ReadRecords(ctx context.Context, path string) ([]*appcat.Record, error) {
	return r.ReadRecordsFn(ctx, path)
}

package csv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/appcat"
)

var _ appcat.CatalogReader = (*Reader)(nil)

// utf8BOM is stripped from the start of the file when present.
const utf8BOM = "\ufeff"

// Reader implements appcat.CatalogReader. Columns are matched by header,
// accepting either layout and English aliases; unknown columns are
// ignored.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadRecords loads the catalog at path. Rows without a name are skipped.
// Returns ENOTFOUND if the file does not exist and EINVALID if it has no
// name column.
func (r *Reader) ReadRecords(ctx context.Context, path string) ([]*appcat.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appcat.Errorf(appcat.ENOTFOUND, "catalog %s not found", path)
		}
		return nil, err
	}
	defer f.Close()

	return Decode(ctx, f)
}

// Decode reads a catalog from src.
func Decode(ctx context.Context, src io.Reader) ([]*appcat.Record, error) {
	br := bufio.NewReader(src)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, appcat.Errorf(appcat.EINVALID, "catalog is empty")
		}
		return nil, appcat.Errorf(appcat.EINVALID, "read header: %v", err)
	}

	index := make(map[field]int, len(header))
	for i, h := range header {
		if f, ok := lookupHeader(h); ok {
			if _, dup := index[f]; !dup {
				index[f] = i
			}
		}
	}
	if _, ok := index[fieldName]; !ok {
		return nil, appcat.Errorf(appcat.EINVALID, "catalog has no %s column", ColumnName)
	}

	var records []*appcat.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, appcat.Errorf(appcat.EINVALID, "line %d: %v", line, err)
		}

		// Cells are kept verbatim: names are matched exactly downstream.
		rec := &appcat.Record{}
		for f, i := range index {
			if i < len(row) {
				set(rec, f, row[i])
			}
		}
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

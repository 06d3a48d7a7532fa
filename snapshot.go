package appcat

import (
	"context"
	"time"
)

// Snapshot is one stored catalog, e.g. the output of a parse, scrape or
// merge run.
type Snapshot struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Source      string    `json:"source"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Label == "" {
		return Errorf(EINVALID, "snapshot label required")
	}
	return nil
}

// SnapshotService represents a service for managing stored catalogs.
type SnapshotService interface {
	// CreateSnapshot stores a snapshot together with its records.
	// The snapshot ID, CreatedAt and RecordCount are set on success.
	// Returns EINVALID if the snapshot or any record is invalid.
	CreateSnapshot(ctx context.Context, snap *Snapshot, records []*Record) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// FindRecords returns the records of a snapshot in stored order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindRecords(ctx context.Context, snapshotID string) ([]*Record, error)

	// DeleteSnapshot permanently removes a snapshot and its records.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID    *string `json:"id"`
	Label *string `json:"label"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

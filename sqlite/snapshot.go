package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/appcat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ appcat.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements appcat.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores a snapshot and its records in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *appcat.Snapshot, records []*appcat.Record) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return appcat.Errorf(appcat.EINVALID, "record %d: %s", i, appcat.ErrorMessage(err))
		}
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, label, source, record_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, snap.Label, snap.Source, len(records), createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (snapshot_id, position, name, platforms, description, rating, price,
			official_website, source_link, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, id, i, r.Name, r.Platforms, r.Description, r.Rating, r.Price,
			r.OfficialWebsite, r.SourceLink, HashRecord(r)); err != nil {
			return fmt.Errorf("insert %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	snap.ID = id
	snap.CreatedAt = createdAt
	snap.RecordCount = len(records)
	return nil
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*appcat.Snapshot, error) {
	var snap appcat.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, source, record_count, created_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Label, &snap.Source, &snap.RecordCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, appcat.Errorf(appcat.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	snap.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter appcat.SnapshotFilter) ([]*appcat.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, label, source, record_count, created_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Label != nil {
		query.WriteString(" AND label = ?")
		args = append(args, *filter.Label)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*appcat.Snapshot
	for rows.Next() {
		var snap appcat.Snapshot
		var createdAt string

		if err := rows.Scan(&snap.ID, &snap.Label, &snap.Source, &snap.RecordCount, &createdAt); err != nil {
			return nil, err
		}

		snap.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		snaps = append(snaps, &snap)
	}

	return snaps, rows.Err()
}

// FindRecords returns the records of a snapshot in stored order.
func (s *SnapshotService) FindRecords(ctx context.Context, snapshotID string) ([]*appcat.Record, error) {
	if _, err := s.FindSnapshotByID(ctx, snapshotID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, platforms, description, rating, price, official_website, source_link
		FROM records
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*appcat.Record
	for rows.Next() {
		var r appcat.Record
		if err := rows.Scan(&r.Name, &r.Platforms, &r.Description, &r.Rating, &r.Price,
			&r.OfficialWebsite, &r.SourceLink); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// FindRecordHistory returns, oldest first, each distinct content hash a
// record with the given name has had across snapshots.
func (s *SnapshotService) FindRecordHistory(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.content_hash
		FROM records r
		JOIN snapshots s ON s.id = r.snapshot_id
		WHERE r.name = ?
		ORDER BY s.created_at, s.rowid
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		if len(hashes) == 0 || hashes[len(hashes)-1] != h {
			hashes = append(hashes, h)
		}
	}

	return hashes, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its records.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return appcat.Errorf(appcat.ENOTFOUND, "snapshot not found")
	}

	return nil
}

package mock

import (
	"context"

	"github.com/fwojciec/appcat"
)

var _ appcat.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of appcat.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, snap *appcat.Snapshot, records []*appcat.Record) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*appcat.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter appcat.SnapshotFilter) ([]*appcat.Snapshot, error)
	FindRecordsFn      func(ctx context.Context, snapshotID string) ([]*appcat.Record, error)
	DeleteSnapshotFn   func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *appcat.Snapshot, records []*appcat.Record) error {
	return s.CreateSnapshotFn(ctx, snap, records)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*appcat.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter appcat.SnapshotFilter) ([]*appcat.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) FindRecords(ctx context.Context, snapshotID string) ([]*appcat.Record, error) {
	return s.FindRecordsFn(ctx, snapshotID)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}

package storage

import (
	"context"

	"nqueens/internal/model"
)

// Store defines persistence operations for run outcomes and saved
// parameter profiles. The profile set is a single record: callers load
// it, mutate it, and save it back whole.
type Store interface {
	Init(ctx context.Context) error
	SaveProfiles(ctx context.Context, profiles model.ProfileSet) error
	GetProfiles(ctx context.Context) (model.ProfileSet, bool, error)
	SaveRunRecord(ctx context.Context, record model.RunRecord) error
	GetRunRecord(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRunRecords(ctx context.Context) ([]model.RunRecord, error)
}

// Resetter is implemented by backends that can drop all stored data.
type Resetter interface {
	Reset(ctx context.Context) error
}

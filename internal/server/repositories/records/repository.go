// Package records defines the reading-record repository contract and its
// implementations.
package records

import (
	"context"

	"github.com/ansapra/ansapra/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.ReadingRecord) (*models.ReadingRecord, error)

	// ListByUser returns the user's records, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*models.ReadingRecord, error)

	// RecentTitles returns the titles of up to limit most recent records.
	RecentTitles(ctx context.Context, userID string, limit int) ([]string, error)

	// AppendAnnotation appends annotation to the record with the given ID,
	// provided it belongs to userID. Returns common.ErrNotFound otherwise.
	AppendAnnotation(ctx context.Context, userID, recordID, annotation string) error

	// DeleteByUser removes all records of a user (account deletion).
	DeleteByUser(ctx context.Context, userID string) error
}

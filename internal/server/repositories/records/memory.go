package records

import (
	"context"
	"sync"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory record store. Records are
// kept per user, most recent first.
type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]*models.ReadingRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string][]*models.ReadingRecord)}
}

func cloneRecord(r *models.ReadingRecord) *models.ReadingRecord {
	c := *r
	c.Annotations = append([]string(nil), r.Annotations...)
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, record *models.ReadingRecord) (*models.ReadingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// newest first
	r.byUser[record.UserID] = append([]*models.ReadingRecord{cloneRecord(record)}, r.byUser[record.UserID]...)
	return record, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.ReadingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.ReadingRecord
	for _, rec := range r.byUser[userID] {
		result = append(result, cloneRecord(rec))
	}
	return result, nil
}

func (r *MemoryRepository) RecentTitles(ctx context.Context, userID string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var titles []string
	for _, rec := range r.byUser[userID] {
		if len(titles) == limit {
			break
		}
		titles = append(titles, rec.Title)
	}
	return titles, nil
}

func (r *MemoryRepository) AppendAnnotation(ctx context.Context, userID, recordID, annotation string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.byUser[userID] {
		if rec.ID == recordID {
			rec.Annotations = append(rec.Annotations, annotation)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	return nil
}

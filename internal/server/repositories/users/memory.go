package users

import (
	"context"
	"sync"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory user store. It backs
// DSN-less runs and service-level tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func clone(u *models.User) *models.User {
	c := *u
	c.Profile = append([]byte(nil), u.Profile...)
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}

	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = clone(user)
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

// MergeSettings holds the write lock across the read-merge-write, so two
// concurrent merges serialize and neither loses the other's keys.
func (r *MemoryRepository) MergeSettings(ctx context.Context, id string, patch models.SettingsPatch) (models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return models.Settings{}, common.ErrNotFound
	}
	u.Settings.Apply(patch)

	merged := u.Settings
	merged.ReadingHabits.SelfAssessment = append([]string(nil), u.Settings.ReadingHabits.SelfAssessment...)
	merged.ReadingHabits.PreferredCharts = append([]string(nil), u.Settings.ReadingHabits.PreferredCharts...)
	return merged, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

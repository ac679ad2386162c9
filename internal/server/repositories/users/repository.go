// Package users defines the user repository contract and its
// implementations.
package users

import (
	"context"

	"github.com/ansapra/ansapra/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// MergeSettings applies the patch to the user's stored settings and
	// returns the result. The read-merge-write is atomic with respect to
	// other MergeSettings calls for the same user.
	MergeSettings(ctx context.Context, id string, patch models.SettingsPatch) (models.Settings, error)

	Delete(ctx context.Context, id string) error
}

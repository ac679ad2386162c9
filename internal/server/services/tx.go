// Package services holds the application services: user/session management
// and the reading (upload/interpretation/history) orchestration.
package services

import (
	"context"
	"database/sql"

	"github.com/ansapra/ansapra/internal/dbx"
)

// withTx runs fn inside a database transaction when a database is present.
// The in-memory repository manager has no *sql.DB; repositories then guard
// themselves and fn runs directly with a nil handle.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}

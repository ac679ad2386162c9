// Package repomanager supplies repositories bound to a database handle, so
// services can run several repository calls inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/server/repositories/records"
	"github.com/ansapra/ansapra/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
}

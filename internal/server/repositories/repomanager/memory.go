package repomanager

import (
	"context"
	"database/sql"

	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/server/repositories/records"
	"github.com/ansapra/ansapra/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out shared in-memory repositories. The DBTX
// argument is ignored; there is no database behind them.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	records *records.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		records: records.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return m.records
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

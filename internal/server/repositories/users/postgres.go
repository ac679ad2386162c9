package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	query :=
		`INSERT INTO users (id, email, password_hash, profile, settings, last_page)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, []byte(user.Profile), settings, user.LastPage).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, profile, settings, last_page, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, profile, settings, last_page, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var profile, settings []byte

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &profile, &settings, &user.LastPage, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Profile = profile
	if err := json.Unmarshal(settings, &user.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return user, nil
}

// MergeSettings locks the user's row, merges the patch into the stored
// settings, and writes the result back. The row lock is held by the
// surrounding transaction, so two concurrent merges serialize instead of
// overwriting each other.
func (r *PostgresRepository) MergeSettings(ctx context.Context, id string, patch models.SettingsPatch) (models.Settings, error) {

	query := `SELECT settings FROM users WHERE id = $1 FOR UPDATE`

	var stored []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, common.ErrNotFound
		}
		return models.Settings{}, fmt.Errorf("db error: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(stored, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	settings.Apply(patch)

	data, err := json.Marshal(settings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("marshal settings: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE users SET settings = $2 WHERE id = $1`, id, data); err != nil {
		return models.Settings{}, fmt.Errorf("db error: %w", err)
	}

	return settings, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.ReadingRecord) (*models.ReadingRecord, error) {

	annotations, err := json.Marshal(record.Annotations)
	if err != nil {
		return nil, fmt.Errorf("marshal annotations: %w", err)
	}
	if record.Annotations == nil {
		annotations = []byte("[]")
	}

	query :=
		`INSERT INTO reading_records (id, user_id, title, filename, uploaded_at, interpretation, keywords, annotations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Title, record.Filename, record.UploadedAt,
		record.Interpretation, record.Keywords, annotations)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ReadingRecord, error) {
	query :=
		`SELECT id, user_id, title, filename, uploaded_at, interpretation, keywords, annotations
		 FROM reading_records
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ReadingRecord
	for rows.Next() {
		rec := &models.ReadingRecord{}
		var annotations []byte
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Filename, &rec.UploadedAt,
			&rec.Interpretation, &rec.Keywords, &annotations)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(annotations, &rec.Annotations); err != nil {
			return nil, fmt.Errorf("unmarshal annotations: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) RecentTitles(ctx context.Context, userID string, limit int) ([]string, error) {
	query :=
		`SELECT title FROM reading_records
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return titles, nil
}

func (r *PostgresRepository) AppendAnnotation(ctx context.Context, userID, recordID, annotation string) error {
	query :=
		`UPDATE reading_records
		 SET annotations = annotations || to_jsonb($3::text)
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, recordID, userID, annotation)
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

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM reading_records WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+reading_records`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.ReadingRecord{
		ID:             "r-1",
		UserID:         "u-1",
		Title:          "CRISPR basics",
		Filename:       "u-1_20260101000000_crispr.pdf",
		UploadedAt:     time.Now().UTC(),
		Interpretation: "text",
		Keywords:       "gene editing",
	}
	if _, err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestListByUser_OrderedNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*title,.*FROM\s+reading_records\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+uploaded_at\s+DESC\s*$`

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "filename", "uploaded_at", "interpretation", "keywords", "annotations"}).
		AddRow("r-2", "u-1", "newer", "f2.pdf", now, "i2", "k2", []byte(`["note"]`)).
		AddRow("r-1", "u-1", "older", "f1.pdf", now.Add(-time.Hour), "i1", "k1", []byte(`[]`))
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r-2" || got[1].ID != "r-1" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if len(got[0].Annotations) != 1 || got[0].Annotations[0] != "note" {
		t.Fatalf("annotations not unmarshalled: %+v", got[0].Annotations)
	}
}

func TestRecentTitles_RespectsLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+title\s+FROM\s+reading_records\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+uploaded_at\s+DESC\s+LIMIT\s+\$2\s*$`

	rows := sqlmock.NewRows([]string{"title"}).AddRow("t1").AddRow("t2").AddRow("t3")
	mock.ExpectQuery(q).WithArgs("u-1", 3).WillReturnRows(rows)

	got, err := repo.RecentTitles(context.Background(), "u-1", 3)
	if err != nil {
		t.Fatalf("RecentTitles error: %v", err)
	}
	if len(got) != 3 || got[0] != "t1" {
		t.Fatalf("unexpected titles: %v", got)
	}
}

func TestAppendAnnotation_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+reading_records\s+SET\s+annotations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AppendAnnotation(context.Background(), "u-1", "ghost", "note")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestAppendAnnotation_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+reading_records\s+SET\s+annotations`).
		WithArgs("r-1", "u-1", "note").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AppendAnnotation(context.Background(), "u-1", "r-1", "note"); err != nil {
		t.Fatalf("AppendAnnotation error: %v", err)
	}
}

func TestDeleteByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+reading_records\s+WHERE\s+user_id`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteByUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteByUser error: %v", err)
	}
}

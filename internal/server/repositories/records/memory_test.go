package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

func newRecord(id, userID, title string) *models.ReadingRecord {
	return &models.ReadingRecord{
		ID:         id,
		UserID:     userID,
		Title:      title,
		UploadedAt: time.Now().UTC(),
	}
}

func TestMemory_CreateKeepsNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, r := range []*models.ReadingRecord{
		newRecord("r-1", "u-1", "first"),
		newRecord("r-2", "u-1", "second"),
		newRecord("r-3", "u-1", "third"),
	} {
		if _, err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 3 || got[0].ID != "r-3" || got[2].ID != "r-1" {
		t.Fatalf("unexpected order: %+v", got)
	}

	titles, err := repo.RecentTitles(ctx, "u-1", 2)
	if err != nil {
		t.Fatalf("RecentTitles error: %v", err)
	}
	if len(titles) != 2 || titles[0] != "third" || titles[1] != "second" {
		t.Fatalf("unexpected titles: %v", titles)
	}
}

func TestMemory_AppendAnnotation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newRecord("r-1", "u-1", "t")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.AppendAnnotation(ctx, "u-1", "r-1", "note"); err != nil {
		t.Fatalf("AppendAnnotation error: %v", err)
	}

	got, _ := repo.ListByUser(ctx, "u-1")
	if len(got[0].Annotations) != 1 || got[0].Annotations[0] != "note" {
		t.Fatalf("annotation not appended: %+v", got[0])
	}
}

func TestMemory_AppendAnnotation_WrongUserOrRecord(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newRecord("r-1", "u-1", "t")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.AppendAnnotation(ctx, "u-1", "ghost", "note"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound for unknown record, got %v", err)
	}
	// record of another user must be invisible
	if err := repo.AppendAnnotation(ctx, "u-2", "r-1", "note"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound for foreign record, got %v", err)
	}

	got, _ := repo.ListByUser(ctx, "u-1")
	if len(got[0].Annotations) != 0 {
		t.Fatalf("failed append must leave history unchanged: %+v", got[0])
	}
}

func TestMemory_DeleteByUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newRecord("r-1", "u-1", "t")); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.DeleteByUser(ctx, "u-1"); err != nil {
		t.Fatalf("DeleteByUser error: %v", err)
	}

	got, _ := repo.ListByUser(ctx, "u-1")
	if len(got) != 0 {
		t.Fatalf("expected empty history after delete, got %+v", got)
	}
}

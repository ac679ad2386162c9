package related

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ansapra/ansapra/internal/common"
)

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "gene editing" {
			t.Errorf("unexpected q: %q", q.Get("q"))
		}
		if q.Get("api_key") != "k" || q.Get("p") != "5" || q.Get("format") != "json" {
			t.Errorf("unexpected query: %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"records": [
				{
					"title": "CRISPR advances",
					"creators": [{"creator": "Doe J"}, {"creator": "Roe R"}],
					"publicationName": "BMC Biology",
					"publicationYear": "2025",
					"doi": "10.1/abc",
					"url": [{"value": "https://example.org/p1"}],
					"abstract": "..."
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, 5*time.Second)

	got, err := c.Search(context.Background(), "gene editing")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 1 record + 2 supplementary links, got %d", len(got))
	}
	if got[0].Title != "CRISPR advances" || got[0].Authors != "Doe J, Roe R" || got[0].URL != "https://example.org/p1" {
		t.Fatalf("unexpected first paper: %+v", got[0])
	}
	if got[1].Journal != "Nature" || got[2].Journal != "Science" {
		t.Fatalf("supplementary links missing: %+v", got[1:])
	}
}

func TestSearch_UnconfiguredKey(t *testing.T) {
	t.Parallel()

	c := NewClient("", "http://unused", time.Second)

	_, err := c.Search(context.Background(), "x")
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("expected common.ErrExternalService, got %v", err)
	}
}

func TestSearch_ProviderFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, time.Second)

	_, err := c.Search(context.Background(), "x")
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("expected common.ErrExternalService, got %v", err)
	}
}

func TestSupplementaryLinks_KeywordSubstitution(t *testing.T) {
	t.Parallel()

	got := SupplementaryLinks("gene editing")
	if got[0].URL != "https://www.nature.com/search?q=gene+editing" {
		t.Fatalf("unexpected Nature URL: %q", got[0].URL)
	}
	if got[1].URL != "https://www.science.org/search?q=gene+editing" {
		t.Fatalf("unexpected Science URL: %q", got[1].URL)
	}
}

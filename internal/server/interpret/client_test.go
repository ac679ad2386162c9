package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ansapra/ansapra/internal/common"
)

func TestInterpret_UnconfiguredKey(t *testing.T) {
	t.Parallel()

	c := NewClient("", "https://api.deepseek.com/v1", "deepseek-chat", 0.7, time.Second)

	_, err := c.Interpret(context.Background(), "prompt")
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("expected common.ErrExternalService, got %v", err)
	}
}

func TestInterpret_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			Temperature float32 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "deepseek-chat" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}
		if req.Temperature != 0.3 {
			t.Errorf("unexpected temperature: %v", req.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"解读内容"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "deepseek-chat", 0.3, 5*time.Second)

	got, err := c.Interpret(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Interpret error: %v", err)
	}
	if got != "解读内容" {
		t.Fatalf("unexpected interpretation: %q", got)
	}
}

func TestInterpret_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "deepseek-chat", 0.3, 5*time.Second)

	_, err := c.Interpret(context.Background(), "prompt")
	if !errors.Is(err, common.ErrExternalService) {
		t.Fatalf("expected common.ErrExternalService, got %v", err)
	}
}

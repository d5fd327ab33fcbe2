package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/koda-tools/koda/internal/domain"
)

func TestOllamaClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}

		var req struct {
			Model   string `json:"model"`
			Prompt  string `json:"prompt"`
			Stream  bool   `json:"stream"`
			Options struct {
				NumCtx int `json:"num_ctx"`
			} `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("generate requests must not stream")
		}
		if req.Options.NumCtx != 26*1024 {
			t.Errorf("num_ctx = %d, want %d", req.Options.NumCtx, 26*1024)
		}

		fmt.Fprint(w, `{"response":"  int main(void) { return 0; }\n"}`)
	}))
	defer srv.Close()

	// A bare host:port must work; the client adds the scheme.
	host := strings.TrimPrefix(srv.URL, "http://")
	client := NewOllamaClient(host)

	got, err := client.Generate(context.Background(), "llm4decompile:22b-v2-q6_K", "undefined4 FUN_00101135(void)", 26*1024)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if got != "int main(void) { return 0; }" {
		t.Errorf("response = %q, want trimmed code", got)
	}
}

func TestOllamaClient_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":"   "}`)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)

	_, err := client.Generate(context.Background(), "m", "p", 0)
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("Generate() error = %v, want ErrEmptyResponse", err)
	}
}

func TestOllamaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)

	_, err := client.Generate(context.Background(), "m", "p", 0)
	if err == nil {
		t.Fatal("Generate() should fail on a 404")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the response body, got %v", err)
	}
}

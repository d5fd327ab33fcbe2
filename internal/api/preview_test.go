package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubRunner fakes command execution; Run optionally performs a real
// HTTP GET so Show's serve/open/wait loop can be exercised in-process.
type stubRunner struct {
	calls   [][]string
	stdin   string
	output  []byte
	fetches bool
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) error {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.fetches && len(args) > 0 {
		resp, err := http.Get(args[len(args)-1])
		if err != nil {
			return err
		}
		resp.Body.Close()
	}
	return nil
}

func (s *stubRunner) Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		s.stdin = string(data)
	}
	return s.output, nil
}

func (s *stubRunner) LookPath(name string) (string, error) {
	return name, nil
}

func TestPreview_Render(t *testing.T) {
	r := &stubRunner{output: []byte("<html>rendered</html>")}
	p := &Preview{Runner: r, Pandoc: "pandoc"}

	got, err := p.Render(context.Background(), []byte("# Title"), "Koda")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if string(got) != "<html>rendered</html>" {
		t.Errorf("Render() = %q, want pandoc output", got)
	}
	if r.stdin != "# Title" {
		t.Errorf("pandoc stdin = %q, want the markdown", r.stdin)
	}

	call := strings.Join(r.calls[0], " ")
	for _, want := range []string{"pandoc", "--standalone", "-f gfm", "-t html", "title=Koda"} {
		if !strings.Contains(call, want) {
			t.Errorf("pandoc call missing %q: %q", want, call)
		}
	}
}

func TestPreview_Handler(t *testing.T) {
	p := &Preview{}
	served := make(chan struct{}, 1)

	srv := httptest.NewServer(p.Handler([]byte("<html>page</html>"), served))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "<html>page</html>" {
		t.Errorf("body = %q, want the page", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	select {
	case <-served:
	default:
		t.Error("handler should signal served after a fetch")
	}
}

func TestPreview_Show(t *testing.T) {
	r := &stubRunner{fetches: true}
	p := &Preview{Runner: r, Browser: "test-browser"}

	if err := p.Show(context.Background(), []byte("<html>ok</html>")); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	if len(r.calls) != 1 || r.calls[0][0] != "test-browser" {
		t.Fatalf("calls = %v, want one test-browser invocation", r.calls)
	}
	if !strings.HasPrefix(r.calls[0][1], "http://127.0.0.1:") {
		t.Errorf("browser URL = %q, want a loopback address", r.calls[0][1])
	}
}

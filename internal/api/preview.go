// Package api provides koda's local HTTP surface: a short-lived
// loopback server that shows rendered ask transcripts in the browser.
package api

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koda-tools/koda/internal/domain"
)

// Preview renders Markdown transcripts to standalone HTML via pandoc
// and serves the result once on a loopback address.
type Preview struct {
	Runner  domain.CommandRunner
	Pandoc  string
	Browser string // Empty = platform opener (xdg-open / open)
	Host    string // Defaults to 127.0.0.1
}

// Render converts a Markdown transcript to a standalone HTML page.
func (p *Preview) Render(ctx context.Context, markdown []byte, title string) ([]byte, error) {
	args := []string{
		"--embed-resources",
		"--standalone",
		"--highlight-style", "kate",
		"--metadata", "title=" + title,
		"-f", "gfm",
		"-t", "html",
	}
	return p.Runner.Output(ctx, bytes.NewReader(markdown), p.Pandoc, args...)
}

// Handler serves the rendered page at the root path. Each fetch of the
// page signals served (non-blocking, capacity 1).
func (p *Preview) Handler(page []byte, served chan<- struct{}) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
		select {
		case served <- struct{}{}:
		default:
		}
	})

	return r
}

// Show serves the page on an ephemeral loopback port, opens the browser
// on it, and returns once the page has been fetched. A two-minute
// deadline bounds the wait when no browser ever connects.
func (p *Preview) Show(ctx context.Context, page []byte) error {
	host := p.Host
	if host == "" {
		host = "127.0.0.1"
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	served := make(chan struct{}, 1)
	srv := &http.Server{Handler: p.Handler(page, served)}
	go srv.Serve(ln)
	defer srv.Close()

	url := "http://" + ln.Addr().String()
	fmt.Fprintf(os.Stderr, "preview: %s\n", url)

	if err := p.openBrowser(ctx, url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}

	select {
	case <-served:
		// Let the browser finish loading before the server goes away
		time.Sleep(500 * time.Millisecond)
		return nil
	case <-time.After(2 * time.Minute):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// openBrowser launches the configured browser, or the platform's
// default opener. Blocks until the opener exits, which for direct
// browser commands can mean until the window is closed.
func (p *Preview) openBrowser(ctx context.Context, url string) error {
	if p.Browser != "" {
		return p.Runner.Run(ctx, p.Browser, url)
	}

	switch runtime.GOOS {
	case "darwin":
		return p.Runner.Run(ctx, "open", url)
	case "windows":
		return p.Runner.Run(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return p.Runner.Run(ctx, "xdg-open", url)
	}
}

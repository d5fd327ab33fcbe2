package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/koda-tools/koda/internal/domain"
)

// fakeStore implements domain.InvocationStore in memory.
type fakeStore struct {
	invocations []domain.Invocation
}

func (f *fakeStore) Record(inv domain.Invocation) error {
	f.invocations = append(f.invocations, inv)
	return nil
}

func (f *fakeStore) List(limit int) ([]domain.Invocation, error) {
	if limit > 0 && limit < len(f.invocations) {
		return f.invocations[:limit], nil
	}
	return f.invocations, nil
}

func TestPrintHistory(t *testing.T) {
	store := &fakeStore{invocations: []domain.Invocation{
		{
			ID:        "abc",
			Timestamp: time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
			Command:   "ask",
			Model:     "qwen2.5-coder:32b",
			Usage:     domain.Usage{TotalTokens: 150},
			Duration:  2500 * time.Millisecond,
		},
	}}

	var out bytes.Buffer
	if err := printHistory(&out, store, 10); err != nil {
		t.Fatalf("printHistory() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"WHEN", "COMMAND", "2026-08-31 14:30", "ask", "qwen2.5-coder:32b", "150", "2.5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestPrintHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	if err := printHistory(&out, &fakeStore{}, 10); err != nil {
		t.Fatalf("printHistory() error: %v", err)
	}
	if !strings.Contains(out.String(), "No invocations recorded yet.") {
		t.Errorf("output = %q, want the empty notice", out.String())
	}
}

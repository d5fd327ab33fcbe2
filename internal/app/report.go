package app

import (
	"fmt"
	"time"

	"github.com/koda-tools/koda/internal/domain"
)

// Report captures wall-clock timing alongside backend-reported usage
// for one model invocation.
type Report struct {
	Usage        domain.Usage
	Start        time.Time
	FirstToken   time.Time
	End          time.Time
	ThinkingTime time.Duration // > 0 when the model emitted a <think> block
}

// Duration is the total wall time of the invocation.
func (r Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Lines formats the stats block printed to stderr after a run.
// Returns nil when the backend reported no usage.
func (r Report) Lines() []string {
	if r.Usage.TotalTokens == 0 {
		return nil
	}

	total := r.End.Sub(r.Start).Seconds()
	lines := []string{
		"",
		fmt.Sprintf("Tokens used: %d", r.Usage.TotalTokens),
		fmt.Sprintf("Prompt tokens: %d", r.Usage.PromptTokens),
		fmt.Sprintf("Completion tokens: %d", r.Usage.CompletionTokens),
		fmt.Sprintf("Time taken: %.6f seconds", total),
	}

	if !r.FirstToken.IsZero() {
		if pp := r.FirstToken.Sub(r.Start).Seconds(); pp > 0 {
			lines = append(lines, fmt.Sprintf("Prompt processing speed: %.2f tokens/s", float64(r.Usage.PromptTokens)/pp))
		}
		if gen := r.End.Sub(r.FirstToken).Seconds(); gen > 0 {
			lines = append(lines, fmt.Sprintf("Generation speed: %.2f tokens/s", float64(r.Usage.CompletionTokens)/gen))
		}
	}

	return lines
}

// formatDuration renders a duration as compact prose: "45s", "2m30s", "1h5m".
func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		m, s := seconds/60, seconds%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := seconds / 3600
		m := (seconds % 3600) / 60
		s := seconds % 60
		out := fmt.Sprintf("%dh", h)
		if m > 0 {
			out += fmt.Sprintf("%dm", m)
		}
		if s > 0 {
			out += fmt.Sprintf("%ds", s)
		}
		return out
	}
}

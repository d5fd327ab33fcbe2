package domain

import (
	"context"
	"io"
)

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// CommandRunner abstracts external command execution (the pull tool,
// pandoc, clang-format, the browser opener) so dispatch logic can be
// tested without spawning processes.
type CommandRunner interface {
	// Run executes name with args, wiring the command to the caller's
	// stdio. It blocks until the command exits and returns a non-nil
	// error on non-zero exit status.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes name with args, feeding stdin (may be nil) and
	// returning the command's stdout.
	Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

	// LookPath reports the resolved path of an executable, or an error
	// if it is not installed.
	LookPath(name string) (string, error)
}

// ChatClient abstracts the streaming chat completions backend.
// Implemented by infra/llm.Client.
type ChatClient interface {
	// Chat streams a completion, calling onToken per content fragment,
	// and returns the usage reported in the final stream chunk.
	Chat(ctx context.Context, model string, messages []Message, onToken func(string)) (Usage, error)
}

// GenerateClient abstracts the raw completion backend.
// Implemented by infra/llm.OllamaClient.
type GenerateClient interface {
	Generate(ctx context.Context, model, prompt string, contextLength int) (string, error)
}

// InvocationStore abstracts persistent invocation history.
// Implemented by infra/history.Store.
type InvocationStore interface {
	Record(inv Invocation) error
	List(limit int) ([]Invocation, error)
}

// Package domain holds the core types shared across koda.
// It has no infrastructure dependencies; infra packages depend on it,
// never the reverse.
package domain

import "time"

// Modelfile is the parsed form of an Ollama-style model definition file.
type Modelfile struct {
	From       string // Base model reference. The first FROM directive wins.
	Parameters map[string][]string
	System     string
	Template   string
	Adapter    string
	License    string
}

// Usage summarizes token accounting for one model invocation,
// as reported by the backend in the final stream chunk.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Invocation is one recorded LLM call, persisted to the history store.
type Invocation struct {
	ID        string
	Timestamp time.Time
	Command   string
	Model     string
	Usage     Usage
	Duration  time.Duration
}

// Message is a single chat turn sent to the completions API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/koda-tools/koda/internal/domain"
)

// The persona the assistant presents to the model.
var (
	languageExpertise = []string{"Python", "Java", "Rust", "C", "Verilog"}
	assistantSkills   = []string{"software reverse engineering", "hardware reverse engineering"}
)

// Assistant answers a one-shot question with optional file context,
// streaming the reply to Out while collecting it for the transcript.
type Assistant struct {
	Client domain.ChatClient
	Model  string
	Out    io.Writer // Streamed tokens; defaults to os.Stdout
}

// Ask sends the question and context files to the model. Context files
// are injected as alternating user/assistant turns before the question,
// so the model treats them as already-acknowledged material.
func (a *Assistant) Ask(ctx context.Context, prompt string, contextFiles []string) (string, Report, error) {
	messages := []domain.Message{
		{Role: "system", Content: personaPrompt()},
	}

	for _, name := range contextFiles {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", Report{}, fmt.Errorf("read context %s: %w", name, err)
		}
		content := fmt.Sprintf("Content for %q:\n\n```\n%s\n```\n", name, strings.TrimSpace(string(data)))
		messages = append(messages,
			domain.Message{Role: "user", Content: content},
			domain.Message{Role: "assistant", Content: "Ok."},
		)
	}

	messages = append(messages, domain.Message{Role: "user", Content: questionPrompt(prompt, contextFiles)})

	out := a.Out
	if out == nil {
		out = os.Stdout
	}

	var collected strings.Builder
	var thinkStart, thinkEnd time.Time
	report := Report{Start: time.Now()}

	usage, err := a.Client.Chat(ctx, a.Model, messages, func(tok string) {
		now := time.Now()
		if report.FirstToken.IsZero() {
			report.FirstToken = now
		}
		if thinkStart.IsZero() && strings.Contains(tok, "<think>") {
			thinkStart = now
		}
		if thinkEnd.IsZero() && strings.Contains(tok, "</think>") {
			thinkEnd = now
		}
		fmt.Fprint(out, tok)
		collected.WriteString(tok)
	})

	report.End = time.Now()
	report.Usage = usage
	if !thinkStart.IsZero() && !thinkEnd.IsZero() {
		report.ThinkingTime = thinkEnd.Sub(thinkStart)
	}

	if err != nil {
		return collected.String(), report, err
	}

	fmt.Fprintln(out)
	return collected.String(), report, nil
}

// personaPrompt builds the assistant's system message.
func personaPrompt() string {
	parts := []string{
		"You are Koda, an AI coding assistant.",
		fmt.Sprintf("You are an expert in %s.", joinWithAnd(languageExpertise)),
		fmt.Sprintf("You are also an expert at %s.", joinWithAnd(assistantSkills)),
		`Do NOT prefix your responses with any words like "Certainly!", "Sure!", or similar phrases.`,
		"If your answer contains fenced code blocks in Markdown, include the relevant full file path in the code block tag using this structure: ```$LANGUAGE:$FILEPATH```",
		`For example, for a Python file "program.py", the structure should be: ` + "```python:program.py```",
		"For executable terminal commands, enclose each command in an individual ```bash``` language fenced code block without any comments or newlines inside.",
	}
	return strings.Join(parts, "\n")
}

// questionPrompt builds the final user turn.
func questionPrompt(prompt string, contextFiles []string) string {
	parts := []string{
		"Answer positively without apologizing.",
	}
	if len(contextFiles) > 0 {
		parts = append(parts, "You have access to the provided codebase context.")
	}
	parts = append(parts, "Question:")
	for _, name := range contextFiles {
		parts = append(parts, fmt.Sprintf("`%s`", name))
	}
	parts = append(parts, prompt)
	return strings.Join(parts, " ")
}

// joinWithAnd joins items as prose: "a", "a and b", "a, b, and c".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

package app

import (
	"fmt"
	"strings"
	"time"
)

// BuildTranscript renders an ask session as a Markdown document for the
// preview pipeline.
func BuildTranscript(model, prompt string, contextFiles []string, response string, thinkingTime time.Duration) []byte {
	paragraphs := []string{
		fmt.Sprintf("**Model:** `%s`", model),
		"## Prompt",
		prompt,
	}

	if len(contextFiles) > 0 {
		items := make([]string, len(contextFiles))
		for i, name := range contextFiles {
			items[i] = fmt.Sprintf("- `%s`", name)
		}
		paragraphs = append(paragraphs, "**Context:**", strings.Join(items, "\n"))
	}

	paragraphs = append(paragraphs, "## Response", wrapThinkBlock(response, thinkingTime))

	return []byte(strings.Join(paragraphs, "\n\n"))
}

// wrapThinkBlock folds a <think>...</think> section into a collapsible
// details block so rendered pages hide the reasoning by default.
func wrapThinkBlock(response string, thinkingTime time.Duration) string {
	if !strings.Contains(response, "<think>") || !strings.Contains(response, "</think>") {
		return response
	}

	summary := "💡 Thought Process"
	if thinkingTime > 0 {
		summary += fmt.Sprintf(" (thought for %s)", formatDuration(thinkingTime))
	}

	response = strings.Replace(response, "<think>", "<details>\n<summary>"+summary+"</summary>\n\n", 1)
	response = strings.Replace(response, "</think>", "\n\n</details>", 1)
	return response
}

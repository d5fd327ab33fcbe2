// Package llm provides clients for the local model backends: the
// OpenAI-compatible chat completions API and the Ollama generate API.
//
// Both speak plain HTTP+JSON. The chat client consumes the SSE stream
// ("data: {...}" lines) so tokens reach the terminal as they are
// produced, and captures the final usage chunk for accounting.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/koda-tools/koda/internal/domain"
)

// Client talks to an OpenAI-compatible /v1/chat/completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a chat client for the given base URL. The key may be
// empty; local backends ignore it, so a placeholder is sent.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, domain.ErrMissingBaseURL
	}
	if apiKey == "" {
		apiKey = "dummy"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Minute, // Long timeout for generation
		},
	}, nil
}

// Chat sends a streamed chat completion request and invokes onToken for
// each content fragment as it arrives. It blocks until the stream ends
// and returns the usage reported by the backend's final chunk.
func (c *Client) Chat(ctx context.Context, model string, messages []domain.Message, onToken func(string)) (domain.Usage, error) {
	body := map[string]interface{}{
		"model":    model,
		"messages": messages,
		"stream":   true,
		"stream_options": map[string]bool{
			"include_usage": true,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return domain.Usage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return domain.Usage{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Usage{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return domain.Usage{}, fmt.Errorf("chat error %d: %s", resp.StatusCode, string(respBody))
	}

	var usage domain.Usage

	scanner := bufio.NewScanner(resp.Body)
	// Increase buffer for long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		jsonData := strings.TrimPrefix(line, "data: ")
		if jsonData == "" || jsonData == "[DONE]" {
			continue
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
			Usage *struct {
				PromptTokens     int `json:"prompt_tokens"`
				CompletionTokens int `json:"completion_tokens"`
				TotalTokens      int `json:"total_tokens"`
			} `json:"usage"`
		}
		if err := json.Unmarshal([]byte(jsonData), &chunk); err != nil {
			continue
		}

		if chunk.Usage != nil {
			usage = domain.Usage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
				TotalTokens:      chunk.Usage.TotalTokens,
			}
		}

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			select {
			case <-ctx.Done():
				return usage, ctx.Err()
			default:
			}
			onToken(chunk.Choices[0].Delta.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		return usage, fmt.Errorf("read stream: %w", err)
	}

	return usage, nil
}

package llm

import (
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

// OllamaClient talks to an Ollama /api/generate endpoint.
// Used by the decompiler pipeline, which needs raw completion mode
// rather than chat templating.
type OllamaClient struct {
	host   string
	client *http.Client
}

// NewOllamaClient creates a generate client for the given host.
// A bare host:port gets an http:// scheme prepended.
func NewOllamaClient(host string) *OllamaClient {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return &OllamaClient{
		host: strings.TrimRight(host, "/"),
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Generate sends a non-streamed completion request and returns the full
// response text. contextLength sets the model's num_ctx option when > 0.
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string, contextLength int) (string, error) {
	body := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"stream": false,
	}
	if contextLength > 0 {
		body["options"] = map[string]int{
			"num_ctx": contextLength,
		}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.host+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generate error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

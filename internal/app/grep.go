package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/koda-tools/koda/internal/domain"
)

// errBadVerdict marks a model response that was not the required JSON
// verdict. Per-file, non-fatal: the file is diagnosed and skipped.
var errBadVerdict = errors.New("model did not return a JSON verdict")

// Grep asks the model whether each file matches the given criteria.
type Grep struct {
	Client   domain.ChatClient
	Model    string
	Criteria string
}

// Run reads file paths from in, one per line, stopping at the first
// blank line or EOF. Matching paths are written to out; files whose
// verdict cannot be decoded are diagnosed to errOut and skipped.
// Binary files are skipped silently.
func (g *Grep) Run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			break
		}

		matched, err := g.match(ctx, path)
		if err != nil {
			if errors.Is(err, errBadVerdict) {
				fmt.Fprintf(errOut, "failed to decode JSON from LLM for file %q\n", path)
				continue
			}
			return err
		}
		if matched {
			fmt.Fprintln(out, path)
		}
	}
	return scanner.Err()
}

// match judges a single file. Non-text files never match.
func (g *Grep) match(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return false, nil
	}

	content := fmt.Sprintf("Content for %q:\n\n```\n%s\n```\n", path, strings.TrimSpace(string(data)))

	// System message last: the criteria follow the file content.
	messages := []domain.Message{
		{Role: "user", Content: content},
		{Role: "assistant", Content: "Ok."},
		{Role: "system", Content: g.systemMessage()},
	}

	var collected strings.Builder
	if _, err := g.Client.Chat(ctx, g.Model, messages, func(tok string) {
		collected.WriteString(tok)
	}); err != nil {
		return false, err
	}

	var verdict struct {
		Match bool `json:"match"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(collected.String())), &verdict); err != nil {
		return false, errBadVerdict
	}
	return verdict.Match, nil
}

func (g *Grep) systemMessage() string {
	parts := []string{
		fmt.Sprintf("Given the file name and file contents provided by the user, determine whether it matches the following criteria: %s", g.Criteria),
		"Your response should be a JSON object containing a single boolean key `match`.",
		"The value of this key should be `true` if the criteria was met, otherwise it should be `false`.",
		"DO NOT OUTPUT ANY TEXT OTHER THAN THE JSON OBJECT!",
		"DO NOT PLACE THE JSON OBJECT INSIDE A CODE BLOCK!",
		"ALL JSON MUST BE PROPERLY FORMATTED WITH NO EMBEDDED COMMENTS!",
	}
	return strings.Join(parts, "\n")
}

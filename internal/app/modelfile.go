// Package app provides application-layer orchestration services.
// It wires domain logic with infrastructure, never the reverse.
package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/koda-tools/koda/internal/domain"
)

// ParseModelfile parses an Ollama-style Modelfile from a reader.
// Supports directives: FROM, PARAMETER, SYSTEM, TEMPLATE, ADAPTER, LICENSE.
// Multi-line values use triple-quote delimiters (""").
//
// Only the first FROM line counts; later FROM lines are ignored. The base
// model is the second whitespace-delimited token of that line; trailing
// tokens are ignored. A FROM line with no second token leaves the base
// model unset.
func ParseModelfile(r io.Reader) (*domain.Modelfile, error) {
	mf := &domain.Modelfile{
		Parameters: make(map[string][]string),
	}

	scanner := bufio.NewScanner(r)
	var multiLine *string
	var inMultiLine bool
	var fromSeen bool

	for scanner.Scan() {
		line := scanner.Text()

		// Handle multi-line blocks (""" delimiters)
		if inMultiLine {
			trimmed := strings.TrimSpace(line)
			if trimmed == `"""` {
				inMultiLine = false
				multiLine = nil
				continue
			}
			*multiLine += line + "\n"
			continue
		}

		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		directive := fields[0]

		if directive == "FROM" {
			if fromSeen {
				continue
			}
			fromSeen = true
			if len(fields) >= 2 {
				mf.From = fields[1]
			}
			continue
		}

		// Remaining directives take the rest of the line as their value.
		parts := strings.SplitN(line, " ", 2)
		if len(parts) < 2 {
			continue // Ignore malformed lines
		}
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "PARAMETER":
			kv := strings.SplitN(value, " ", 2)
			if len(kv) == 2 {
				key := strings.TrimSpace(kv[0])
				val := strings.TrimSpace(kv[1])
				mf.Parameters[key] = append(mf.Parameters[key], val)
			}

		case "SYSTEM":
			if strings.HasPrefix(value, `"""`) {
				mf.System = ""
				multiLine = &mf.System
				inMultiLine = true
			} else {
				mf.System = unquote(value)
			}

		case "TEMPLATE":
			if strings.HasPrefix(value, `"""`) {
				mf.Template = ""
				multiLine = &mf.Template
				inMultiLine = true
			} else {
				mf.Template = unquote(value)
			}

		case "ADAPTER":
			mf.Adapter = value

		case "LICENSE":
			if strings.HasPrefix(value, `"""`) {
				mf.License = ""
				multiLine = &mf.License
				inMultiLine = true
			} else {
				mf.License = unquote(value)
			}

		default:
			// Unknown directives are silently ignored for forward compatibility
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read Modelfile: %w", err)
	}

	if mf.From == "" {
		return nil, domain.ErrNoFromDirective
	}

	return mf, nil
}

// unquote removes surrounding double quotes if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/koda-tools/koda/internal/domain"
)

// Translator streams a translation of the input text to Out.
type Translator struct {
	Client domain.ChatClient
	Model  string
	Out    io.Writer // Defaults to os.Stdout
}

// Translate sends the input through the translation prompt.
func (t *Translator) Translate(ctx context.Context, language, input string) (Report, error) {
	messages := []domain.Message{
		{Role: "system", Content: fmt.Sprintf("Translate the provided text to %s. YOU MUST ONLY OUTPUT THE TRANSLATED TEXT!", language)},
		{Role: "user", Content: input},
	}

	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	report := Report{Start: time.Now()}
	usage, err := t.Client.Chat(ctx, t.Model, messages, func(tok string) {
		if report.FirstToken.IsZero() {
			report.FirstToken = time.Now()
		}
		fmt.Fprint(out, tok)
	})
	report.End = time.Now()
	report.Usage = usage

	if err != nil {
		return report, err
	}

	fmt.Fprintln(out)
	return report, nil
}

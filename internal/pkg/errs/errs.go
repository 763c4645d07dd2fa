package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// WithUserMessage attaches text that may be shown to an end user verbatim.
// The message is carried as a hint so it survives further wrapping.
func WithUserMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.WithHint(err, msg)
}

// UserMessage returns the outermost user message attached to err, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if hints := cr.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return fallback
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

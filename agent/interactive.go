package agent

import (
	"context"
	"errors"
	"io"
	"strings"
)

// LineReader yields one line of input per call and io.EOF at end of input.
type LineReader interface {
	Readline() (string, error)
}

// IsQuitCommand reports whether line asks to leave an interactive loop.
func IsQuitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Interact reads lines until end of input, a quit command, or a cancelled
// context, calling handle for each non-blank line. Errors returned by handle
// stop the loop.
func Interact(ctx context.Context, in LineReader, handle func(ctx context.Context, line string) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := in.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if IsQuitCommand(line) {
			return nil
		}

		if err := handle(ctx, line); err != nil {
			return err
		}
	}
}

// Reporter is told about each task before the backend call and after the
// task resolves.
type Reporter interface {
	Calling(backend string)
	Report(TaskReport)
}

// RunInteractive runs one task per input line. Backend failures are
// reported and do not end the loop.
func (s *Session) RunInteractive(ctx context.Context, in LineReader, r Reporter) error {
	return Interact(ctx, in, func(ctx context.Context, line string) error {
		r.Calling(s.backendName)
		report, _ := s.RunTask(ctx, line)
		r.Report(report)
		return nil
	})
}

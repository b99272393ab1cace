package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const confirmPrompt = "Command appears destructive. Confirm execute? [y/N]: "

//go:generate mockgen -destination=confirmermocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent Confirmer
type Confirmer interface {
	Confirm(ctx context.Context, command string) (bool, error)
}

// AlwaysConfirm answers every confirmation with its own value. Use
// AlwaysConfirm(false) for unattended runs that must never run flagged
// commands.
type AlwaysConfirm bool

func (a AlwaysConfirm) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}

// Prompter reads one answer after showing a prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type ConsoleConfirmer struct {
	prompter Prompter
	out      io.Writer
	warn     *color.Color
}

func NewConsoleConfirmer(p Prompter, out io.Writer, colorEnabled bool) *ConsoleConfirmer {
	warn := color.New(color.FgYellow, color.Bold)
	if !colorEnabled {
		warn.DisableColor()
	}
	return &ConsoleConfirmer{prompter: p, out: out, warn: warn}
}

func (c *ConsoleConfirmer) Confirm(ctx context.Context, command string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, _ = fmt.Fprintln(c.out, c.warn.Sprintf("! %s", command))

	answer, err := c.prompter.Prompt(confirmPrompt)
	if err != nil {
		return false, err
	}
	return IsAffirmative(answer), nil
}

// IsAffirmative reports whether answer is "y" or "Y". Everything else,
// including "yes", declines.
func IsAffirmative(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

package terminal

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"

	"github.com/mimosa-flytrap/flytrap/config"
)

// HistoryFile is created in the config home.
const HistoryFile = "history"

type editor interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(content string) error
	Close() error
}

// Readline is the interactive line source. Each task line is prompted with
// the expanded prompt template and saved to history; confirmation answers
// are not.
type Readline struct {
	ed       editor
	template string
	counter  int
	now      func() time.Time
}

type Options struct {
	PromptTemplate string
	HistoryPath    string
	Stdout         io.Writer
	Stderr         io.Writer
}

func New(opts Options) (*Readline, error) {
	cfg := &readline.Config{
		Prompt:                 config.FormatPrompt(opts.PromptTemplate, 1, time.Now()),
		HistoryFile:            opts.HistoryPath,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: true,
		Stdin:                  readline.NewCancelableStdin(os.Stdin),
		Stdout:                 opts.Stdout,
		Stderr:                 opts.Stderr,
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return newReadline(rl, opts.PromptTemplate, time.Now), nil
}

func newReadline(ed editor, template string, now func() time.Time) *Readline {
	return &Readline{ed: ed, template: template, counter: 1, now: now}
}

// Readline reads one task line. Ctrl-C and Ctrl-D both end input.
func (r *Readline) Readline() (string, error) {
	r.ed.SetPrompt(config.FormatPrompt(r.template, r.counter, r.now()))

	line, err := r.ed.Readline()
	if err != nil {
		return "", endOfInput(err)
	}

	if line != "" {
		r.counter++
		_ = r.ed.SaveHistory(line)
	}
	return line, nil
}

// Prompt reads one answer after prompt, outside the history.
func (r *Readline) Prompt(prompt string) (string, error) {
	r.ed.SetPrompt(prompt)
	defer r.ed.SetPrompt(config.FormatPrompt(r.template, r.counter, r.now()))

	line, err := r.ed.Readline()
	if err != nil {
		return "", endOfInput(err)
	}
	return line, nil
}

func (r *Readline) Close() error {
	return r.ed.Close()
}

func endOfInput(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return io.EOF
	}
	return err
}

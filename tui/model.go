package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mimosa-flytrap/flytrap/agent"
)

const (
	pollInterval = 100 * time.Millisecond
	maxLines     = 2000
)

type pollMsg time.Time

// ResultFormatter renders one action result as text.
type ResultFormatter interface {
	FormatResult(agent.ActionResult) string
}

type Model struct {
	input   textinput.Model
	queue   Queue
	worker  *Worker
	format  ResultFormatter
	backend string

	lines   []string
	busy    bool
	pending *confirmRequestMsg
	width   int
}

func NewModel(worker *Worker, q Queue, format ResultFormatter, backend string) Model {
	ti := textinput.New()
	ti.Placeholder = "describe a task, or 'exit' to quit"
	ti.Prompt = "task> "
	ti.CharLimit = 4000
	ti.Focus()

	return Model{
		input:   ti,
		queue:   q,
		worker:  worker,
		format:  format,
		backend: backend,
		lines:   []string{styleSystem.Render(agent.Banner)},
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, poll())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case pollMsg:
		for _, queued := range m.queue.drain() {
			m = m.apply(queued)
		}
		return m, poll()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.declinePending()
			return m, tea.Quit
		}
		if m.pending != nil {
			return m.answer(msg), nil
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) apply(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case taskStartedMsg:
		m.busy = true
		m.appendLines(styleSystem.Render(fmt.Sprintf("-> calling %s for plan...", m.backend)))
	case taskDoneMsg:
		m.busy = false
		m.appendLines(m.renderReport(msg.report)...)
		m.appendLines(styleDivider.Render(strings.Repeat("-", 40)))
	case confirmRequestMsg:
		req := msg
		m.pending = &req
		m.appendLines(styleWarn.Render("! " + msg.command))
	}
	return m
}

func (m Model) renderReport(r agent.TaskReport) []string {
	if r.Err != nil {
		return []string{styleError.Render(fmt.Sprintf("Error: %v", r.Err))}
	}
	if !r.Structured {
		return []string{"LLM response (not JSON):", r.Reply}
	}
	out := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		text := m.format.FormatResult(res)
		if res.Status == agent.StatusError {
			text = styleError.Render(text)
		}
		out = append(out, text)
	}
	return out
}

func (m Model) answer(key tea.KeyMsg) Model {
	approved := key.Type == tea.KeyRunes && agent.IsAffirmative(string(key.Runes))
	m.pending.reply <- approved
	m.pending = nil

	if approved {
		m.appendLines(styleSystem.Render("confirmed"))
	} else {
		m.appendLines(styleSystem.Render("declined"))
	}
	return m
}

func (m *Model) declinePending() {
	if m.pending != nil {
		m.pending.reply <- false
		m.pending = nil
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	task := strings.TrimSpace(m.input.Value())
	if task == "" {
		return m, nil
	}
	if agent.IsQuitCommand(task) {
		return m, tea.Quit
	}
	if m.busy || !m.worker.Submit(task) {
		m.appendLines(styleSystem.Render("busy: wait for the current task to finish"))
		return m, nil
	}

	m.busy = true
	m.input.Reset()
	m.appendLines(styleTask.Render("task> " + task))
	return m, nil
}

func (m *Model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	if over := len(m.lines) - maxLines; over > 0 {
		m.lines = append([]string(nil), m.lines[over:]...)
	}
}

func (m Model) View() string {
	var b strings.Builder
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.pending != nil:
		b.WriteString(styleWarn.Render("Command appears destructive. Confirm execute? [y/N]"))
	case m.busy:
		b.WriteString(styleSystem.Render("working..."))
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the worker and the program and blocks until the user quits.
func Run(ctx context.Context, runner TaskRunner, q Queue, format ResultFormatter, backend string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	worker := NewWorker(runner, q)
	go worker.Run(ctx)

	p := tea.NewProgram(NewModel(worker, q, format, backend), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

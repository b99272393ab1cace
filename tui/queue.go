package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mimosa-flytrap/flytrap/agent"
)

const queueSize = 64

// Queue carries messages from the worker goroutine to the UI. The UI drains
// it on a timer.
type Queue chan tea.Msg

func NewQueue() Queue {
	return make(Queue, queueSize)
}

// drain returns every message waiting right now without blocking.
func (q Queue) drain() []tea.Msg {
	var msgs []tea.Msg
	for {
		select {
		case msg := <-q:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func (q Queue) post(ctx context.Context, msg tea.Msg) bool {
	select {
	case q <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

type taskStartedMsg struct {
	task string
}

type taskDoneMsg struct {
	report agent.TaskReport
}

type confirmRequestMsg struct {
	command string
	reply   chan bool
}

// Confirmer asks the UI for a y/N answer and blocks the worker until the
// user responds or ctx ends.
type Confirmer struct {
	queue Queue
}

var _ agent.Confirmer = (*Confirmer)(nil)

func NewConfirmer(q Queue) *Confirmer {
	return &Confirmer{queue: q}
}

func (c *Confirmer) Confirm(ctx context.Context, command string) (bool, error) {
	reply := make(chan bool, 1)
	if !c.queue.post(ctx, confirmRequestMsg{command: command, reply: reply}) {
		return false, ctx.Err()
	}

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

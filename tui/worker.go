package tui

import (
	"context"

	"github.com/mimosa-flytrap/flytrap/agent"
)

//go:generate mockgen -destination=runnermocks_test.go -package=tui github.com/mimosa-flytrap/flytrap/tui TaskRunner
type TaskRunner interface {
	RunTask(ctx context.Context, task string) (agent.TaskReport, error)
}

// Worker runs tasks one at a time off the UI goroutine.
type Worker struct {
	runner TaskRunner
	tasks  chan string
	queue  Queue
}

func NewWorker(runner TaskRunner, q Queue) *Worker {
	return &Worker{runner: runner, tasks: make(chan string, 1), queue: q}
}

// Submit hands a task to the worker. It reports false when a task is
// already waiting.
func (w *Worker) Submit(task string) bool {
	select {
	case w.tasks <- task:
		return true
	default:
		return false
	}
}

func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.tasks:
			if !w.queue.post(ctx, taskStartedMsg{task: task}) {
				return
			}
			report, _ := w.runner.RunTask(ctx, task)
			if !w.queue.post(ctx, taskDoneMsg{report: report}) {
				return
			}
		}
	}
}

package agent

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mimosa-flytrap/flytrap/internal"
)

//go:generate mockgen -destination=backendmocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent Backend
type Backend interface {
	Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// TaskReport is everything one task produced. When Structured is false the
// reply was not an action envelope and Results is empty.
type TaskReport struct {
	ID         string         `json:"id"`
	Task       string         `json:"task"`
	Reply      string         `json:"reply,omitempty"`
	Structured bool           `json:"structured"`
	Results    []ActionResult `json:"results"`
	Err        error          `json:"-"`
}

func (r TaskReport) MarshalJSON() ([]byte, error) {
	type alias TaskReport
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(r)}
	if out.Results == nil {
		out.Results = []ActionResult{}
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Session drives one task at a time: backend call, extraction, then
// sequential execution of the batch.
type Session struct {
	backend      Backend
	executor     *Executor
	backendName  string
	systemPrompt string
	temperature  float64
	out          *zap.SugaredLogger
	debug        *zap.SugaredLogger
}

type SessionOption func(*Session)

func WithTemperature(t float64) SessionOption {
	return func(s *Session) { s.temperature = t }
}

func WithBackendName(name string) SessionOption {
	return func(s *Session) {
		if name != "" {
			s.backendName = name
		}
	}
}

func WithSystemPrompt(p string) SessionOption {
	return func(s *Session) {
		if p != "" {
			s.systemPrompt = p
		}
	}
}

func WithHumanLogger(l *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.out = l
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.debug = l
		}
	}
}

func NewSession(backend Backend, executor *Executor, opts ...SessionOption) *Session {
	s := &Session{
		backend:      backend,
		executor:     executor,
		backendName:  "backend",
		systemPrompt: SystemPrompt,
		temperature:  0.2,
		out:          zap.NewNop().Sugar(),
		debug:        zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) BackendName() string { return s.backendName }

// RunTask sends task to the backend and executes the returned actions in
// order. The error is only set when the backend call fails, in which case no
// action runs; it is also recorded on the report.
func (s *Session) RunTask(ctx context.Context, task string) (TaskReport, error) {
	report := TaskReport{ID: internal.GenerateUniqueSlug("task-"), Task: task}
	dbg := s.debug.With("task_id", report.ID)

	s.out.Infof("task %s: %s", report.ID, task)
	dbg.Debugw("calling backend", "backend", s.backendName, "temperature", s.temperature)

	reply, err := s.backend.Send(ctx, s.systemPrompt, task, s.temperature)
	if err != nil {
		dbg.Errorf("backend error: %v", err)
		report.Err = err
		return report, err
	}
	report.Reply = reply
	dbg.Debugw("backend replied", "reply_len", len(reply))

	doc, ok := Extract(reply)
	if !ok {
		dbg.Debugf("reply is not JSON")
		s.out.Infof("task %s: unstructured reply", report.ID)
		return report, nil
	}

	actions, err := DecodeBatch(doc)
	if err != nil {
		dbg.Debugf("reply is not an action envelope: %v", err)
		s.out.Infof("task %s: unstructured reply", report.ID)
		return report, nil
	}

	report.Structured = true
	dbg.Debugw("executing batch", "actions", len(actions))
	report.Results = s.executor.ExecuteBatch(ctx, actions)

	for i, r := range report.Results {
		s.out.Infof("task %s: action %d %s %s", report.ID, i+1, r.Kind, r.Status)
	}
	return report, nil
}

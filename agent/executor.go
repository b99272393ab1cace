package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mimosa-flytrap/flytrap/config"
)

const DefaultShellTimeout = 300 * time.Second

// Executor performs actions through injected capabilities. It never returns
// an error: every action resolves to exactly one ActionResult.
type Executor struct {
	caps         Capabilities
	policy       ConfirmationPolicy
	auto         bool
	shellTimeout time.Duration
	workDir      string
	clock        Clock
	log          *zap.SugaredLogger
}

type ExecutorOption func(*Executor)

func WithAutoMode(v bool) ExecutorOption {
	return func(e *Executor) { e.auto = v }
}

func WithPolicy(p ConfirmationPolicy) ExecutorOption {
	return func(e *Executor) {
		if p != nil {
			e.policy = p
		}
	}
}

func WithShellTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.shellTimeout = d
		}
	}
}

func WithShellWorkDir(dir string) ExecutorOption {
	return func(e *Executor) { e.workDir = dir }
}

func WithClock(c Clock) ExecutorOption {
	return func(e *Executor) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithExecutorLogger(l *zap.SugaredLogger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

func NewExecutor(caps Capabilities, opts ...ExecutorOption) *Executor {
	e := &Executor{
		caps:         caps,
		policy:       NewKeywordPolicy(PosixDestructiveKeywords),
		shellTimeout: DefaultShellTimeout,
		clock:        NewRealClock(),
		log:          zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.caps.Confirmer == nil {
		e.caps.Confirmer = AlwaysConfirm(false)
	}
	return e
}

// ExecuteBatch runs actions one at a time in the given order. A failing
// action does not stop the batch; only a cancelled context does.
func (e *Executor) ExecuteBatch(ctx context.Context, actions []Action) []ActionResult {
	results := make([]ActionResult, 0, len(actions))
	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			e.log.Debugf("executor: batch interrupted before action %d: %v", i, err)
			break
		}
		results = append(results, e.Execute(ctx, a))
	}
	return results
}

func (e *Executor) Execute(ctx context.Context, action Action) (result ActionResult) {
	start := e.clock.Now()

	defer func() {
		if p := recover(); p != nil {
			result = ActionResult{
				Kind:   action.Kind(),
				Status: StatusError,
				Err:    ExecutionError{Kind: action.Kind(), Err: fmt.Errorf("panic: %v", p)},
			}
		}
		result.Duration = e.clock.Now().Sub(start)
		e.log.Debugw("executor: action done",
			"kind", result.Kind,
			"status", result.Status,
			"error", result.ErrorText(),
			"duration", result.Duration,
		)
	}()

	switch a := action.(type) {
	case ShellAction:
		return e.shell(ctx, a)
	case ReadAction:
		return e.read(a)
	case WriteAction:
		return e.write(a)
	case EmbedAction:
		return e.embed(ctx, a)
	case MessageAction:
		return ActionResult{Kind: KindMessage, Status: StatusExecuted, Message: &MessageOutcome{Text: a.Text}}
	case InvalidAction:
		return invalidResult(a)
	case UnknownAction:
		return ActionResult{Kind: a.Kind(), Status: StatusUnknown, Unknown: &UnknownOutcome{Type: a.Type, Raw: a.Raw}}
	default:
		return ActionResult{Kind: action.Kind(), Status: StatusUnknown, Unknown: &UnknownOutcome{Type: string(action.Kind())}}
	}
}

func (e *Executor) shell(ctx context.Context, a ShellAction) ActionResult {
	outcome := &ShellOutcome{Cmd: a.Cmd}

	if e.policy.RequiresConfirmation(a.Cmd, e.auto) {
		ok, err := e.caps.Confirmer.Confirm(ctx, a.Cmd)
		if err != nil {
			e.log.Debugf("executor: confirmation failed, treating as declined: %v", err)
			return ActionResult{Kind: KindShell, Status: StatusSkipped, Shell: outcome, Err: fmt.Errorf("%w: %v", ErrUserDeclined, err)}
		}
		if !ok {
			return ActionResult{Kind: KindShell, Status: StatusSkipped, Shell: outcome, Err: ErrUserDeclined}
		}
	}

	if e.caps.Shell == nil {
		return errorResult(KindShell, errors.New("shell capability not configured"), func(r *ActionResult) { r.Shell = outcome })
	}

	runCtx, cancel := context.WithTimeout(ctx, e.shellTimeout)
	defer cancel()

	res, err := e.caps.Shell.Run(runCtx, e.workDir, a.Cmd)
	if err != nil {
		return errorResult(KindShell, err, func(r *ActionResult) { r.Shell = outcome })
	}

	outcome.ExitCode = res.ExitCode
	outcome.Stdout = res.Stdout
	outcome.Stderr = res.Stderr
	return ActionResult{Kind: KindShell, Status: StatusExecuted, Shell: outcome}
}

func (e *Executor) read(a ReadAction) ActionResult {
	outcome := &ReadOutcome{Path: a.Path}
	if e.caps.Files == nil {
		return errorResult(KindRead, errors.New("file capability not configured"), func(r *ActionResult) { r.Read = outcome })
	}

	content, err := e.caps.Files.ReadFile(a.Path)
	if err != nil {
		return errorResult(KindRead, err, func(r *ActionResult) { r.Read = outcome })
	}

	outcome.Content = content
	return ActionResult{Kind: KindRead, Status: StatusExecuted, Read: outcome}
}

func (e *Executor) write(a WriteAction) ActionResult {
	outcome := &WriteOutcome{Path: a.Path}
	if e.caps.Files == nil {
		return errorResult(KindWrite, errors.New("file capability not configured"), func(r *ActionResult) { r.Write = outcome })
	}

	if err := e.caps.Files.WriteFile(a.Path, a.Content); err != nil {
		return errorResult(KindWrite, err, func(r *ActionResult) { r.Write = outcome })
	}

	outcome.Bytes = len(a.Content)
	return ActionResult{Kind: KindWrite, Status: StatusExecuted, Write: outcome}
}

func (e *Executor) embed(ctx context.Context, a EmbedAction) ActionResult {
	outcome := &EmbedOutcome{Texts: len(a.Texts)}
	if e.caps.Embedder == nil {
		err := config.Missing("embed.url/embed.api_key", "DEEPSEEK_API_URL and DEEPSEEK_API_KEY")
		return ActionResult{Kind: KindEmbed, Status: StatusError, Embed: outcome, Err: err}
	}

	vectors, err := e.caps.Embedder.Embed(ctx, a.Texts)
	if err != nil {
		var ce config.ConfigurationError
		if errors.As(err, &ce) {
			return ActionResult{Kind: KindEmbed, Status: StatusError, Embed: outcome, Err: err}
		}
		return errorResult(KindEmbed, err, func(r *ActionResult) { r.Embed = outcome })
	}

	outcome.Embeddings = vectors
	return ActionResult{Kind: KindEmbed, Status: StatusExecuted, Embed: outcome}
}

func errorResult(kind Kind, err error, payload func(*ActionResult)) ActionResult {
	r := ActionResult{Kind: kind, Status: StatusError, Err: ExecutionError{Kind: kind, Err: err}}
	payload(&r)
	return r
}

func invalidResult(a InvalidAction) ActionResult {
	r := ActionResult{Kind: a.ActionKind, Status: StatusError, Err: a.Err}
	switch a.ActionKind {
	case KindShell:
		r.Shell = &ShellOutcome{}
	case KindRead:
		r.Read = &ReadOutcome{}
	case KindWrite:
		r.Write = &WriteOutcome{}
	case KindEmbed:
		r.Embed = &EmbedOutcome{}
	case KindMessage:
		r.Message = &MessageOutcome{}
	}
	return r
}

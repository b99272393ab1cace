package agent

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination=shellmocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent Shell
type Shell interface {
	Run(ctx context.Context, workDir string, command string) (ShellResult, error)
}

type ShellResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

//go:generate mockgen -destination=filemocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent Files
type Files interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
}

//go:generate mockgen -destination=embeddermocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent Embedder
type Embedder interface {
	Embed(ctx context.Context, texts []string) (json.RawMessage, error)
}

// Capabilities are the side effects the Executor may perform. Embedder may
// be nil, in which case embed actions fail without network I/O.
type Capabilities struct {
	Shell     Shell
	Files     Files
	Embedder  Embedder
	Confirmer Confirmer
}

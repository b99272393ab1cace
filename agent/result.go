package agent

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusExecuted Status = "executed"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
	StatusUnknown  Status = "unknown"
)

// ActionResult is the outcome of one action. Exactly one payload pointer is
// set, matching Kind; Err is set for StatusError and StatusSkipped.
type ActionResult struct {
	Kind     Kind
	Status   Status
	Duration time.Duration
	Err      error

	Shell   *ShellOutcome
	Read    *ReadOutcome
	Write   *WriteOutcome
	Embed   *EmbedOutcome
	Message *MessageOutcome
	Unknown *UnknownOutcome
}

type ShellOutcome struct {
	Cmd      string
	ExitCode int
	Stdout   string
	Stderr   string
}

type ReadOutcome struct {
	Path    string
	Content string
}

type WriteOutcome struct {
	Path  string
	Bytes int
}

type EmbedOutcome struct {
	Texts      int
	Embeddings json.RawMessage
}

type MessageOutcome struct {
	Text string
}

type UnknownOutcome struct {
	Type string
	Raw  json.RawMessage
}

func (r ActionResult) OK() bool {
	return r.Status == StatusExecuted
}

// ErrorText returns the error message, or "" when there is none.
func (r ActionResult) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type resultJSON struct {
	Kind       Kind            `json:"kind"`
	Status     Status          `json:"status"`
	Cmd        string          `json:"cmd,omitempty"`
	ReturnCode *int            `json:"returncode,omitempty"`
	Stdout     *string         `json:"stdout,omitempty"`
	Stderr     *string         `json:"stderr,omitempty"`
	Path       string          `json:"path,omitempty"`
	Content    *string         `json:"content,omitempty"`
	Bytes      *int            `json:"bytes,omitempty"`
	Embeddings json.RawMessage `json:"embeddings,omitempty"`
	Text       *string         `json:"text,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
	Error      string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
}

func (r ActionResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Kind:       r.Kind,
		Status:     r.Status,
		Error:      r.ErrorText(),
		DurationMS: r.Duration.Milliseconds(),
	}

	switch {
	case r.Shell != nil:
		out.Cmd = r.Shell.Cmd
		if r.Status == StatusExecuted {
			out.ReturnCode = &r.Shell.ExitCode
			out.Stdout = &r.Shell.Stdout
			out.Stderr = &r.Shell.Stderr
		}
	case r.Read != nil:
		out.Path = r.Read.Path
		if r.Status == StatusExecuted {
			out.Content = &r.Read.Content
		}
	case r.Write != nil:
		out.Path = r.Write.Path
		if r.Status == StatusExecuted {
			out.Bytes = &r.Write.Bytes
		}
	case r.Embed != nil:
		out.Embeddings = r.Embed.Embeddings
	case r.Message != nil:
		out.Text = &r.Message.Text
	case r.Unknown != nil:
		out.Raw = r.Unknown.Raw
	}

	return json.Marshal(out)
}

package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	Banner         = "Full-stack programming agent - interactive mode. Type 'exit' to quit."
	unstructuredHd = "LLM response (not JSON):"
)

var _ Reporter = (*Renderer)(nil)

// Renderer prints task reports for a person at a terminal, or as one JSON
// document per task.
type Renderer struct {
	out      io.Writer
	jsonMode bool

	header *color.Color
	warn   *color.Color
	fail   *color.Color
}

func NewRenderer(out io.Writer, colorEnabled, jsonMode bool) *Renderer {
	r := &Renderer{
		out:      out,
		jsonMode: jsonMode,
		header:   color.New(color.FgCyan),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed),
	}
	if !colorEnabled {
		r.header.DisableColor()
		r.warn.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

func (r *Renderer) Banner() {
	if r.jsonMode {
		return
	}
	r.println(Banner)
}

// Calling announces a backend call before it blocks.
func (r *Renderer) Calling(backend string) {
	if r.jsonMode {
		return
	}
	r.println(r.header.Sprintf("-> calling %s for plan...", backend))
}

func (r *Renderer) Report(report TaskReport) {
	if r.jsonMode {
		r.println(indentJSON(report))
		return
	}

	if report.Err != nil {
		r.println(r.fail.Sprintf("Error: %v", report.Err))
		return
	}

	if !report.Structured {
		r.println(unstructuredHd)
		r.println(report.Reply)
		return
	}

	for _, res := range report.Results {
		r.println(r.FormatResult(res))
	}
}

// FormatResult renders one result the way the console shows it.
func (r *Renderer) FormatResult(res ActionResult) string {
	if res.Status == StatusUnknown {
		typ := string(res.Kind)
		if res.Unknown != nil {
			typ = res.Unknown.Type
		}
		return r.warn.Sprintf("Unknown action type: %s", typ)
	}

	if res.Kind == KindShell && res.Shell != nil {
		return r.shell(res)
	}

	if res.Status == StatusError {
		return r.fail.Sprintf("%s error: %s", res.Kind, res.ErrorText())
	}

	switch {
	case res.Read != nil:
		return fmt.Sprintf("%s\n%s", r.header.Sprintf("--- content of %s ---", res.Read.Path), res.Read.Content)
	case res.Write != nil:
		return fmt.Sprintf("Wrote %s", res.Write.Path)
	case res.Embed != nil:
		return fmt.Sprintf("Embeddings result: %s", compactJSON(res.Embed.Embeddings))
	case res.Message != nil:
		return res.Message.Text
	}
	return ""
}

func (r *Renderer) shell(res ActionResult) string {
	switch res.Status {
	case StatusSkipped:
		return r.warn.Sprint(indentJSON(struct {
			Cmd    string `json:"cmd"`
			Status string `json:"status"`
			Output string `json:"output"`
		}{res.Shell.Cmd, string(StatusSkipped), ErrUserDeclined.Error()}))
	case StatusError:
		return r.fail.Sprint(indentJSON(struct {
			Cmd    string `json:"cmd"`
			Status string `json:"status"`
			Error  string `json:"error"`
		}{res.Shell.Cmd, string(StatusError), res.ErrorText()}))
	}
	return indentJSON(struct {
		Cmd        string `json:"cmd"`
		ReturnCode int    `json:"returncode"`
		Stdout     string `json:"stdout"`
		Stderr     string `json:"stderr"`
	}{res.Shell.Cmd, res.Shell.ExitCode, res.Shell.Stdout, res.Shell.Stderr})
}

func (r *Renderer) println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

func indentJSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

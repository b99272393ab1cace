package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/mimosa-flytrap/flytrap/agent"
)

const (
	Banner        = "Chat mode. Type 'exit' to quit."
	EmptyResponse = "(empty response)"
	DefaultPrompt = "chat> "
)

//go:generate mockgen -destination=backendmocks_test.go -package=chat_test github.com/mimosa-flytrap/flytrap/chat Backend
type Backend interface {
	Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// Client is a single-turn conversation with a role prompt: every line is
// sent on its own, without earlier turns.
type Client struct {
	backend     Backend
	role        string
	temperature float64
	out         io.Writer
	fail        *color.Color
	debug       *zap.SugaredLogger
}

type Option func(*Client)

func WithRole(role string) Option {
	return func(c *Client) { c.role = role }
}

func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

func WithColor(enabled bool) Option {
	return func(c *Client) {
		if !enabled {
			c.fail.DisableColor()
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.debug = l
		}
	}
}

func New(backend Backend, out io.Writer, opts ...Option) *Client {
	c := &Client{
		backend:     backend,
		temperature: 0.2,
		out:         out,
		fail:        color.New(color.FgRed),
		debug:       zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ask sends one question and prints the reply.
func (c *Client) Ask(ctx context.Context, question string) error {
	c.debug.Debugw("chat: sending", "len", len(question), "temperature", c.temperature)

	reply, err := c.backend.Send(ctx, c.role, question, c.temperature)
	if err != nil {
		return err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = EmptyResponse
	}
	_, _ = fmt.Fprintln(c.out, reply)
	return nil
}

// Run reads questions until end of input or a quit command. A failed call
// is printed and the loop goes on.
func (c *Client) Run(ctx context.Context, in agent.LineReader) error {
	_, _ = fmt.Fprintln(c.out, Banner)

	return agent.Interact(ctx, in, func(ctx context.Context, line string) error {
		if err := c.Ask(ctx, strings.TrimSpace(line)); err != nil {
			c.debug.Errorf("chat: %v", err)
			_, _ = fmt.Fprintln(c.out, c.fail.Sprintf("Error: %v", err))
		}
		return nil
	})
}

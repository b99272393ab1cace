package backend

import (
	"context"

	co "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/mimosa-flytrap/flytrap/config"
)

type cohereChatFunc func(ctx context.Context, req *co.ChatRequest) (*co.NonStreamedChatResponse, error)

// Cohere calls the hosted Cohere chat API through the official SDK.
type Cohere struct {
	chat  cohereChatFunc
	model string
}

var _ Client = (*Cohere)(nil)

func NewCohere(apiKey, model string) (*Cohere, error) {
	if apiKey == "" {
		return nil, config.Missing("cohere.api_key", "COHERE_API_KEY")
	}

	client := cohereclient.NewClient(cohereclient.WithToken(apiKey))
	return newCohere(func(ctx context.Context, req *co.ChatRequest) (*co.NonStreamedChatResponse, error) {
		return client.Chat(ctx, req)
	}, model), nil
}

func newCohere(chat cohereChatFunc, model string) *Cohere {
	return &Cohere{chat: chat, model: model}
}

func (c *Cohere) Name() string { return "cohere" }

func (c *Cohere) Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	req := &co.ChatRequest{
		Message:     userPrompt,
		Temperature: &temperature,
	}
	if c.model != "" {
		model := c.model
		req.Model = &model
	}
	if systemPrompt != "" {
		req.ChatHistory = []*co.ChatMessage{
			{Role: co.ChatMessageRoleSystem, Message: systemPrompt},
		}
	}

	res, err := c.chat(ctx, req)
	if err != nil {
		return "", wrap(c.Name(), err)
	}
	if res == nil {
		return "", nil
	}
	return res.Text, nil
}

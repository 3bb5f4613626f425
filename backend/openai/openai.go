// Package openai provides a backend adapter using the OpenAI Chat
// Completions API. It maps graphmesh's normalized Request structure onto the
// SDK's message format and extracts the completion text.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/graphmesh/backend"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI backend adapter. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Backend wraps the OpenAI Chat Completions API behind the generic backend.Backend interface.
type Backend struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI backend using the official client.
func New(optFns ...func(o *Options)) *Backend {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI backend from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Backend {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{client: client, opts: opts}
}

// Generate implements non-streaming generation over Chat Completions.
func (b *Backend) Generate(ctx context.Context, req backend.Request) (string, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = b.opts.Temperature
	}

	params := openai.ChatCompletionNewParams{
		Model:               b.opts.Model,
		Messages:            buildMessages(req),
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(b.opts.MaxCompletionTokens),
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api error: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Info implements backend.Backend.
func (b *Backend) Info() backend.Info {
	return backend.Info{Name: b.opts.Model, Provider: "openai"}
}

// buildMessages converts the request into SDK message params: optional system
// message, history turns, then the prompt as the final user message.
func buildMessages(req backend.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)

	if req.SystemMessage != "" {
		messages = append(messages, openai.SystemMessage(req.SystemMessage))
	}

	for _, turn := range req.History {
		if turn.Content == "" {
			continue
		}
		switch turn.Role {
		case backend.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	messages = append(messages, openai.UserMessage(req.Prompt))

	return messages
}

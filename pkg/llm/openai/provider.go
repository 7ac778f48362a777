package openai

import (
	"context"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/pkg/llm"

	"github.com/m-mizutani/goerr/v2"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel         = "gpt-4o-mini"
	HuggingFaceRouterURL = "https://router.huggingface.co/v1"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client *goopenai.Client
	model  string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIProvider{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends prompt as a single user message.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: 0.3, Model: p.model}, opts...)

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: options.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", apperror.Upstream(err, "chat completion failed", goerr.V("model", options.Model))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(apperror.ErrUpstream, "no completion choices returned", goerr.V("model", options.Model))
	}

	return resp.Choices[0].Message.Content, nil
}

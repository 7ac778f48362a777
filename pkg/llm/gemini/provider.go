package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/pkg/llm"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultModel = "gemini-2.5-flash"

	roleUser = "user"
)

type chatPart struct {
	Text string `json:"text"`
}

type chatContent struct {
	Parts []*chatPart `json:"parts"`
	Role  string      `json:"role"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type chatRequest struct {
	Contents         []*chatContent    `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type chatCandidate struct {
	Content *chatContent `json:"content"`
}

type chatResponse struct {
	Candidates []*chatCandidate `json:"candidates"`
}

type GeminiProvider struct {
	ApiKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		BaseURL:   "https://generativelanguage.googleapis.com/v1",
		ModelName: model,
		Client:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Generate sends prompt as a single user turn to generateContent.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: p.ModelName}, opts...)

	contents := []*chatContent{{
		Parts: []*chatPart{{Text: prompt}},
		Role:  roleUser,
	}}

	payload := chatRequest{Contents: contents}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		payload.GenerationConfig = &generationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		}
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", goerr.Wrap(err, "marshal gemini request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, options.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", goerr.Wrap(err, "create gemini request")
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", apperror.Upstream(err, "gemini request failed", goerr.V("model", options.Model))
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperror.Upstream(err, "read gemini response")
	}

	if res.StatusCode != http.StatusOK {
		return "", goerr.Wrap(apperror.ErrUpstream, "gemini status error",
			goerr.V("status", res.StatusCode),
			goerr.V("body", string(resBody)),
		)
	}

	var geminiRes chatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", apperror.Upstream(err, "decode gemini response")
	}
	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", goerr.Wrap(apperror.ErrUpstream, "gemini returned no candidates")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/pkg/llm"

	"github.com/m-mizutani/goerr/v2"
)

const generatePath = "/api/generate"

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type generateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	Stream  bool             `json:"stream"`
	Options *generateOptions `json:"options,omitempty"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate runs a non-streaming completion against the local Ollama server.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: o.ModelName}, opts...)

	payload := generateRequest{
		Model:  options.Model,
		Prompt: prompt,
		Stream: false,
	}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		payload.Options = &generateOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", goerr.Wrap(err, "marshal ollama request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "create ollama request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.Client.Do(req)
	if err != nil {
		return "", apperror.Upstream(err, "ollama request failed", goerr.V("model", options.Model))
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperror.Upstream(err, "read ollama response")
	}

	if res.StatusCode != http.StatusOK {
		return "", goerr.Wrap(apperror.ErrUpstream, "ollama status error",
			goerr.V("status", res.StatusCode),
			goerr.V("body", string(resBody)),
		)
	}

	var out generateResponse
	if err := json.Unmarshal(resBody, &out); err != nil {
		return "", apperror.Upstream(err, "decode ollama response")
	}
	if !out.Done {
		return "", goerr.Wrap(apperror.ErrUpstream, "ollama returned an incomplete response", goerr.V("model", options.Model))
	}

	return out.Response, nil
}

package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/m-mizutani/goerr/v2"
)

const geminiEmbeddingModel = "text-embedding-004"

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType,omitempty"`
}

type geminiBatchRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiBatchResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

type GeminiProvider struct {
	ApiKey   string
	BaseURL  string
	TaskType string
	Client   *http.Client
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		ApiKey:   apiKey,
		BaseURL:  "https://generativelanguage.googleapis.com/v1",
		TaskType: "RETRIEVAL_DOCUMENT",
		Client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Encode sends every text in a single batchEmbedContents call.
func (p *GeminiProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batch := geminiBatchRequest{Requests: make([]geminiEmbedRequest, len(texts))}
	for i, text := range texts {
		batch.Requests[i] = geminiEmbedRequest{
			Model:    "models/" + geminiEmbeddingModel,
			Content:  geminiContent{Parts: []geminiContentPart{{Text: text}}},
			TaskType: p.TaskType,
		}
	}
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, goerr.Wrap(err, "marshal gemini embedding request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:batchEmbedContents", p.BaseURL, geminiEmbeddingModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "create gemini embedding request")
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, apperror.Upstream(err, "gemini embedding request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperror.Upstream(err, "read gemini embedding response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(apperror.ErrUpstream, "gemini embedding error",
			goerr.V("status", res.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var parsed geminiBatchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperror.Upstream(err, "decode gemini embedding response")
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, goerr.Wrap(apperror.ErrUpstream, "gemini returned wrong number of embeddings",
			goerr.V("want", len(texts)),
			goerr.V("got", len(parsed.Embeddings)),
		)
	}

	vectors := make([][]float32, len(parsed.Embeddings))
	for i, e := range parsed.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

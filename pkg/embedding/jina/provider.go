package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/pkg/embedding"

	"github.com/m-mizutani/goerr/v2"
)

type JinaProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ embedding.Embedder = (*JinaProvider)(nil)

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewJinaProvider(apiKey string) *JinaProvider {
	return &JinaProvider{
		apiKey:  apiKey,
		baseURL: "https://api.jina.ai/v1/embeddings",
		model:   "jina-embeddings-v2-base-en",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *JinaProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	jsonData, err := json.Marshal(embeddingRequest{Model: p.model, Input: texts})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.Upstream(err, "jina request failed")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Upstream(err, "failed to read jina response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(apperror.ErrUpstream, "jina api error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(bodyBytes)),
		)
	}

	var jinaResp embeddingResponse
	if err := json.Unmarshal(bodyBytes, &jinaResp); err != nil {
		return nil, apperror.Upstream(err, "failed to decode jina response")
	}
	if jinaResp.Error != nil {
		return nil, goerr.Wrap(apperror.ErrUpstream, "jina api returned error", goerr.V("message", jinaResp.Error.Message))
	}
	if len(jinaResp.Data) != len(texts) {
		return nil, goerr.Wrap(apperror.ErrUpstream, "jina returned wrong number of embeddings",
			goerr.V("want", len(texts)),
			goerr.V("got", len(jinaResp.Data)),
		)
	}

	// Jina returns 768 dimensions for v2-base-en
	vectors := make([][]float32, len(texts))
	for _, d := range jinaResp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, goerr.Wrap(apperror.ErrUpstream, "jina embedding index out of range", goerr.V("index", d.Index))
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

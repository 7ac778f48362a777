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

// OllamaProvider implements Embedder for local Ollama models (e.g., nomic-embed-text)
type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOllamaProvider(baseURL string, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"` // Ollama returns float64
}

// Encode uses the batch /api/embed endpoint so the whole document is one call.
func (p *OllamaProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	jsonBody, err := json.Marshal(ollamaEmbedRequest{Model: p.Model, Input: texts})
	if err != nil {
		return nil, goerr.Wrap(err, "marshal ollama embedding request")
	}

	endpoint := fmt.Sprintf("%s/api/embed", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, goerr.Wrap(err, "create ollama embedding request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, apperror.Upstream(err, "ollama embedding request failed", goerr.V("model", p.Model))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Upstream(err, "read ollama embedding response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(apperror.ErrUpstream, "ollama embedding error",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(bodyBytes)),
		)
	}

	var ollamaResp ollamaEmbedResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, apperror.Upstream(err, "decode ollama embedding response")
	}
	if len(ollamaResp.Embeddings) != len(texts) {
		return nil, goerr.Wrap(apperror.ErrUpstream, "ollama returned wrong number of embeddings",
			goerr.V("want", len(texts)),
			goerr.V("got", len(ollamaResp.Embeddings)),
		)
	}

	vectors := make([][]float32, len(ollamaResp.Embeddings))
	for i, embedding := range ollamaResp.Embeddings {
		values := make([]float32, len(embedding))
		for j, v := range embedding {
			values[j] = float32(v)
		}
		// nomic vectors are not unit length; normalize so distances are comparable.
		vectors[i] = normalizeVector(values)
	}
	return vectors, nil
}

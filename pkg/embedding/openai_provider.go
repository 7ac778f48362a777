package embedding

import (
	"context"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIEmbeddingModel = openai.SmallEmbedding3

// OpenAIProvider embeds with the OpenAI embeddings API (text-embedding-3-small by default).
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	m := DefaultOpenAIEmbeddingModel
	if model != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

func (p *OpenAIProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, apperror.Upstream(err, "openai embedding request failed", goerr.V("model", string(p.model)))
	}
	if len(resp.Data) != len(texts) {
		return nil, goerr.Wrap(apperror.ErrUpstream, "openai returned wrong number of embeddings",
			goerr.V("want", len(texts)),
			goerr.V("got", len(resp.Data)),
		)
	}

	// Data carries its own index; do not trust response order.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, goerr.Wrap(apperror.ErrUpstream, "openai embedding index out of range", goerr.V("index", d.Index))
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

package vectorindex

import (
	"context"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// StoreIndex delegates search to a persistent backend (pgvector) for one document.
type StoreIndex struct {
	searcher   Searcher
	documentId uuid.UUID
	rows       int
	dim        int
}

var _ Index = (*StoreIndex)(nil)

func NewStoreIndex(searcher Searcher, documentId uuid.UUID, rows, dim int) *StoreIndex {
	return &StoreIndex{
		searcher:   searcher,
		documentId: documentId,
		rows:       rows,
		dim:        dim,
	}
}

func (s *StoreIndex) Len() int {
	return s.rows
}

func (s *StoreIndex) Dimension() int {
	return s.dim
}

func (s *StoreIndex) Search(ctx context.Context, query []float32, k int) ([]int, error) {
	if s.rows == 0 {
		return nil, goerr.Wrap(apperror.ErrNotReady, "index is empty", goerr.V("document_id", s.documentId))
	}
	if len(query) != s.dim {
		return nil, goerr.Wrap(apperror.ErrUpstream, "query dimension does not match index",
			goerr.V("index_dim", s.dim),
			goerr.V("query_dim", len(query)),
		)
	}
	if k <= 0 {
		return []int{}, nil
	}
	if k > s.rows {
		k = s.rows
	}

	ids, err := s.searcher.SearchNearest(ctx, s.documentId, query, k)
	if err != nil {
		return nil, goerr.Wrap(err, "vector store search failed", goerr.V("document_id", s.documentId))
	}
	return ids, nil
}

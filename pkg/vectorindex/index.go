package vectorindex

import (
	"context"

	"github.com/google/uuid"
)

// Index answers k-nearest-neighbour queries over row-addressable embeddings.
// Row ids are positions in the chunk sequence the index was built from.
type Index interface {
	Len() int
	Dimension() int
	// Search returns up to k row ids ordered nearest-first.
	Search(ctx context.Context, query []float32, k int) ([]int, error)
}

// Searcher is a persistent nearest-neighbour backend scoped by document.
type Searcher interface {
	SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error)
}

package contract

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchNearest returns the chunk indexes of the k rows closest to query by L2 distance.
	SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error)
}

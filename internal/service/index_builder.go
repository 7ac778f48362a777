package service

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const (
	IndexBackendMemory   = "memory"
	IndexBackendPgvector = "pgvector"
)

// IIndexBuilder turns the embedded chunks of a new document into a searchable index.
// Writes go through uow so they commit together with the Document row.
type IIndexBuilder interface {
	Build(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID, chunks []string, vectors [][]float32) (vectorindex.Index, error)
}

func NewIndexBuilder(backend string, uowFactory unitofwork.RepositoryFactory) (IIndexBuilder, error) {
	switch backend {
	case "", IndexBackendMemory:
		return memoryIndexBuilder{}, nil
	case IndexBackendPgvector:
		return &pgvectorIndexBuilder{uowFactory: uowFactory}, nil
	}
	return nil, goerr.Wrap(apperror.ErrConfiguration, "unknown vector index backend", goerr.V("backend", backend))
}

type memoryIndexBuilder struct{}

func (memoryIndexBuilder) Build(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID, chunks []string, vectors [][]float32) (vectorindex.Index, error) {
	return vectorindex.NewFlat(vectors)
}

type pgvectorIndexBuilder struct {
	uowFactory unitofwork.RepositoryFactory
}

func (b *pgvectorIndexBuilder) Build(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID, chunks []string, vectors [][]float32) (vectorindex.Index, error) {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	rows := make([]*entity.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		if len(vectors[i]) != dim {
			return nil, goerr.Wrap(apperror.ErrUpstream, "embedding dimensions are inconsistent",
				goerr.V("row", i),
				goerr.V("expected", dim),
				goerr.V("got", len(vectors[i])),
			)
		}
		rows[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: documentId,
			ChunkIndex: i,
			Content:    chunk,
			Embedding:  vectors[i],
		}
	}

	if err := uow.DocumentChunkRepository().CreateBulk(ctx, rows); err != nil {
		return nil, goerr.Wrap(err, "failed to store document chunks", goerr.V("document_id", documentId))
	}

	return vectorindex.NewStoreIndex(chunkSearcher{uowFactory: b.uowFactory}, documentId, len(rows), dim), nil
}

// chunkSearcher runs each search in its own short-lived unit of work.
type chunkSearcher struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s chunkSearcher) SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentChunkRepository().SearchNearest(ctx, documentId, query, k)
}

package implementation

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/mapper"
	"pdf-qa-be/internal/model"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rows per INSERT; keeps large documents under the postgres parameter limit.
const chunkInsertBatchSize = 200

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, chunkInsertBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error) {
	if k <= 0 {
		return []int{}, nil
	}

	var indexes []int
	err := nearestChunks(r.db.WithContext(ctx), documentId, query, k).
		Pluck("chunk_index", &indexes).Error
	if err != nil {
		return nil, err
	}
	return indexes, nil
}

// nearestChunks orders a document's chunks by pgvector L2 distance to query.
// The tie-breaker shares the expression: a later Order call would replace it.
func nearestChunks(db *gorm.DB, documentId uuid.UUID, query []float32, k int) *gorm.DB {
	return db.Model(&model.DocumentChunk{}).
		Where("document_id = ?", documentId).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <-> ? ASC, chunk_index ASC",
			Vars: []interface{}{pgvector.NewVector(query)},
		}}).
		Limit(k)
}

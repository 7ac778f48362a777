package implementation

import (
	"context"
	"errors"
	"fmt"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/mapper"
	"pdf-qa-be/internal/model"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GeneratedArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeneratedArtifactMapper
}

func NewGeneratedArtifactRepository(db *gorm.DB) contract.GeneratedArtifactRepository {
	return &GeneratedArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewGeneratedArtifactMapper(),
	}
}

func (r *GeneratedArtifactRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.GeneratedArtifact, error) {
	var m model.GeneratedArtifact
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GeneratedArtifactRepositoryImpl) SetField(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string) error {
	row := &model.GeneratedArtifact{
		Id:         uuid.New(),
		DocumentId: documentId,
	}
	switch kind {
	case artifact.Summary:
		row.Summary = &value
	case artifact.Flashcards:
		row.Flashcards = &value
	case artifact.MCQs:
		row.Mcqs = &value
	default:
		return fmt.Errorf("unknown artifact kind %q", kind)
	}

	// INSERT ... ON CONFLICT (document_id) DO UPDATE SET <kind> = excluded.<kind>
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{string(kind)}),
		}).
		Create(row).Error
}

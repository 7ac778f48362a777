package specification

import (
	"pdf-qa-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentID scopes child rows (chat records, chunks, artifacts) to one document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type NewestUploadFirst struct{}

func (s NewestUploadFirst) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByUploadDesc(db)
}

// InsertionOrder sorts chat records oldest first; id breaks created_at ties.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedAsc(db).Order("id ASC")
}

package contract

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
)

type GeneratedArtifactRepository interface {
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.GeneratedArtifact, error)
	// SetField writes one artifact kind, creating the document's row if needed.
	// Other kinds are left untouched.
	SetField(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string) error
}

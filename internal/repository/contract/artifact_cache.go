package contract

import (
	"context"

	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
)

// ArtifactCache is a read-through copy of persisted artifact values.
// A miss only means the database must be consulted.
type ArtifactCache interface {
	Get(ctx context.Context, documentId uuid.UUID, kind artifact.Kind) (string, bool)
	Set(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string)
}

func ArtifactCacheKey(documentId uuid.UUID, kind artifact.Kind) string {
	return "artifact:" + documentId.String() + ":" + string(kind)
}

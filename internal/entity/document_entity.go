package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentMetadata struct {
	Pages  int `json:"pages"`
	Words  int `json:"words"`
	Chunks int `json:"chunks"`
}

type Document struct {
	Id         uuid.UUID
	Filename   string
	StoredPath string
	UploadTime time.Time
	Metadata   DocumentMetadata
}

// DocumentChunk is one indexed window of a document, used by the pgvector index backend.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}

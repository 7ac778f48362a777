package mapper

import (
	"testing"
	"time"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDocumentMapper_MetadataSurvives(t *testing.T) {
	m := NewDocumentMapper()
	doc := &entity.Document{
		Id:         uuid.New(),
		Filename:   "notes.pdf",
		StoredPath: "uploads/pdfs/notes.pdf",
		UploadTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Metadata:   entity.DocumentMetadata{Pages: 3, Words: 900, Chunks: 3},
	}

	row := m.ToModel(doc)
	assert.JSONEq(t, `{"pages":3,"words":900,"chunks":3}`, string(row.Metadata))

	back := m.ToEntity(row)
	require.NotNil(t, back)
	assert.Equal(t, *doc, *back)
}

func TestDocumentMapper_BadMetadataIsZero(t *testing.T) {
	m := NewDocumentMapper()
	got := m.ToEntity(&model.Document{Filename: "x.pdf", Metadata: datatypes.JSON("not json")})
	assert.Equal(t, entity.DocumentMetadata{}, got.Metadata)
}

func TestNilInputs(t *testing.T) {
	assert.Nil(t, NewDocumentMapper().ToEntity(nil))
	assert.Nil(t, NewDocumentChunkMapper().ToModel(nil))
	assert.Nil(t, NewChatRecordMapper().ToEntity(nil))
	assert.Nil(t, NewGeneratedArtifactMapper().ToModel(nil))
}

func TestDocumentChunkMapper_Vector(t *testing.T) {
	m := NewDocumentChunkMapper()
	row := m.ToModel(&entity.DocumentChunk{ChunkIndex: 2, Content: "c", Embedding: []float32{1, 2, 3}})
	assert.Equal(t, []float32{1, 2, 3}, row.Embedding.Slice())
	assert.Equal(t, 2, m.ToEntity(row).ChunkIndex)
}

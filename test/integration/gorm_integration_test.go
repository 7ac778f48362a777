package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/model"
	"pdf-qa-be/internal/repository/specification"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/database"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "failed to connect to DB")

	require.NoError(t, database.EnableVectorExtension(gormDB))
	require.NoError(t, gormDB.AutoMigrate(
		&model.Document{},
		&model.DocumentChunk{},
		&model.ChatRecord{},
		&model.GeneratedArtifact{},
	))
	return gormDB
}

func createDocument(t *testing.T, db *gorm.DB, uow unitofwork.UnitOfWork, vectors [][]float32) *entity.Document {
	t.Helper()
	ctx := context.Background()

	doc := &entity.Document{
		Id:         uuid.New(),
		Filename:   "integration.pdf",
		StoredPath: "uploads/pdfs/integration.pdf",
		UploadTime: time.Now(),
		Metadata:   entity.DocumentMetadata{Pages: 1, Words: 10, Chunks: len(vectors)},
	}

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	rows := make([]*entity.DocumentChunk, len(vectors))
	for i, v := range vectors {
		rows[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: i,
			Content:    "chunk",
			Embedding:  v,
		}
	}
	require.NoError(t, uow.DocumentChunkRepository().CreateBulk(ctx, rows))
	require.NoError(t, uow.Commit())

	t.Cleanup(func() {
		db.Where("document_id = ?", doc.Id).Delete(&model.DocumentChunk{})
		db.Where("document_id = ?", doc.Id).Delete(&model.GeneratedArtifact{})
		db.Where("document_id = ?", doc.Id).Delete(&model.ChatRecord{})
		db.Where("id = ?", doc.Id).Delete(&model.Document{})
	})
	return doc
}

func TestGormConnection(t *testing.T) {
	gormDB := setupDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.DocumentChunkRepository())

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	t.Run("Document round trip keeps metadata", func(t *testing.T) {
		doc := createDocument(t, gormDB, uowFactory.NewUnitOfWork(ctx), [][]float32{{0, 0}, {1, 1}})

		found, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: doc.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, doc.Filename, found.Filename)
		assert.Equal(t, 2, found.Metadata.Chunks)

		count, err := uow.DocumentChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: doc.Id})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("Rollback leaves no document behind", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(ctx)
		id := uuid.New()

		require.NoError(t, txUow.Begin(ctx))
		require.NoError(t, txUow.DocumentRepository().Create(ctx, &entity.Document{
			Id:         id,
			Filename:   "rolled-back.pdf",
			UploadTime: time.Now(),
		}))
		require.NoError(t, txUow.Rollback())

		found, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSearchNearest_OrdersByL2Distance(t *testing.T) {
	gormDB := setupDB(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	doc := createDocument(t, gormDB, uowFactory.NewUnitOfWork(ctx), [][]float32{
		{0, 0, 0},
		{10, 10, 10},
		{1, 1, 1},
		{5, 5, 5},
	})

	indexes, err := uowFactory.NewUnitOfWork(ctx).DocumentChunkRepository().
		SearchNearest(ctx, doc.Id, []float32{0.9, 0.9, 0.9}, 3)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 3}, indexes)
}

func TestGeneratedArtifact_SetFieldKeepsOtherKinds(t *testing.T) {
	gormDB := setupDB(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	doc := createDocument(t, gormDB, uowFactory.NewUnitOfWork(ctx), [][]float32{{1}})

	repo := uowFactory.NewUnitOfWork(ctx).GeneratedArtifactRepository()

	require.NoError(t, repo.SetField(ctx, doc.Id, artifact.Summary, "short summary"))
	require.NoError(t, repo.SetField(ctx, doc.Id, artifact.MCQs, "Q: ...\nAnswer: A"))
	require.NoError(t, repo.SetField(ctx, doc.Id, artifact.Summary, "newer summary"))

	row, err := repo.FindByDocumentId(ctx, doc.Id)
	require.NoError(t, err)
	require.NotNil(t, row)

	summary, ok := row.Field(artifact.Summary)
	assert.True(t, ok)
	assert.Equal(t, "newer summary", summary)

	_, ok = row.Field(artifact.Flashcards)
	assert.False(t, ok)

	mcqs, ok := row.Field(artifact.MCQs)
	assert.True(t, ok)
	assert.Contains(t, mcqs, "Answer: A")
}

func TestChatRecord_HistoryInInsertionOrder(t *testing.T) {
	gormDB := setupDB(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	doc := createDocument(t, gormDB, uowFactory.NewUnitOfWork(ctx), [][]float32{{1}})

	repo := uowFactory.NewUnitOfWork(ctx).ChatRecordRepository()
	for _, q := range []string{"first?", "second?", "third?"} {
		require.NoError(t, repo.Create(ctx, &entity.ChatRecord{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			Question:   q,
			Answer:     "answer to " + q,
		}))
	}

	records, err := repo.FindAll(ctx,
		specification.ByDocumentID{DocumentID: doc.Id},
		specification.InsertionOrder{},
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first?", records[0].Question)
	assert.Equal(t, "third?", records[2].Question)
}

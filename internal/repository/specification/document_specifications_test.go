package specification

import (
	"testing"

	"pdf-qa-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestByDocumentIDAndInsertionOrder(t *testing.T) {
	db := dryRunDB(t)
	docId := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := ByDocumentID{DocumentID: docId}.Apply(tx.Model(&model.ChatRecord{}))
		q = InsertionOrder{}.Apply(q)
		return q.Find(&[]model.ChatRecord{})
	})

	assert.Contains(t, sql, `document_id = '`+docId.String()+`'`)
	assert.Contains(t, sql, "ORDER BY created_at ASC,id ASC")
}

func TestNewestUploadFirst(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return NewestUploadFirst{}.Apply(tx.Model(&model.Document{})).Find(&[]model.Document{})
	})

	assert.Contains(t, sql, `FROM "documents"`)
	assert.Contains(t, sql, "ORDER BY upload_time DESC")
}

package unitofwork

import (
	"context"

	"pdf-qa-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	ChatRecordRepository() contract.ChatRecordRepository
	GeneratedArtifactRepository() contract.GeneratedArtifactRepository
}

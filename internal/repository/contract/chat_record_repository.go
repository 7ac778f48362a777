package contract

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/repository/specification"
)

type ChatRecordRepository interface {
	Create(ctx context.Context, record *entity.ChatRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRecord, error)
}

package implementation

import (
	"context"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/mapper"
	"pdf-qa-be/internal/model"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatRecordMapper
}

func NewChatRecordRepository(db *gorm.DB) contract.ChatRecordRepository {
	return &ChatRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatRecordMapper(),
	}
}

func (r *ChatRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRecordRepositoryImpl) Create(ctx context.Context, record *entity.ChatRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRecord, error) {
	var models []*model.ChatRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

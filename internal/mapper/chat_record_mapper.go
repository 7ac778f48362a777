package mapper

import (
	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/model"
)

type ChatRecordMapper struct{}

func NewChatRecordMapper() *ChatRecordMapper {
	return &ChatRecordMapper{}
}

func (m *ChatRecordMapper) ToEntity(r *model.ChatRecord) *entity.ChatRecord {
	if r == nil {
		return nil
	}
	return &entity.ChatRecord{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Question:   r.Question,
		Answer:     r.Answer,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *ChatRecordMapper) ToModel(r *entity.ChatRecord) *model.ChatRecord {
	if r == nil {
		return nil
	}
	return &model.ChatRecord{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Question:   r.Question,
		Answer:     r.Answer,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *ChatRecordMapper) ToEntities(records []*model.ChatRecord) []*entity.ChatRecord {
	entities := make([]*entity.ChatRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

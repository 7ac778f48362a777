package mapper

import (
	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/model"
)

type GeneratedArtifactMapper struct{}

func NewGeneratedArtifactMapper() *GeneratedArtifactMapper {
	return &GeneratedArtifactMapper{}
}

func (m *GeneratedArtifactMapper) ToEntity(a *model.GeneratedArtifact) *entity.GeneratedArtifact {
	if a == nil {
		return nil
	}
	return &entity.GeneratedArtifact{
		Id:         a.Id,
		DocumentId: a.DocumentId,
		Summary:    a.Summary,
		Flashcards: a.Flashcards,
		Mcqs:       a.Mcqs,
	}
}

func (m *GeneratedArtifactMapper) ToModel(a *entity.GeneratedArtifact) *model.GeneratedArtifact {
	if a == nil {
		return nil
	}
	return &model.GeneratedArtifact{
		Id:         a.Id,
		DocumentId: a.DocumentId,
		Summary:    a.Summary,
		Flashcards: a.Flashcards,
		Mcqs:       a.Mcqs,
	}
}

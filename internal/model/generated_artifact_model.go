package model

import (
	"github.com/google/uuid"
)

type GeneratedArtifact struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Summary    *string   `gorm:"type:text"`
	Flashcards *string   `gorm:"type:text"`
	Mcqs       *string   `gorm:"type:text"`

	Document Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (GeneratedArtifact) TableName() string {
	return "generated_artifacts"
}

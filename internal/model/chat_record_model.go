package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatRecord struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Question   string    `gorm:"type:text;not null"`
	Answer     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Document Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (ChatRecord) TableName() string {
	return "chat_records"
}

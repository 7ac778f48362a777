package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRecord struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Question   string
	Answer     string
	CreatedAt  time.Time
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	Q string `query:"q" validate:"required"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ChatRecordResponse struct {
	Id        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	DocumentId uuid.UUID            `json:"document_id"`
	History    []ChatRecordResponse `json:"history"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadDocumentResponse struct {
	Message string `json:"message"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	UploadTime time.Time `json:"upload_time"`
	Pages      int       `json:"pages"`
	Words      int       `json:"words"`
	Chunks     int       `json:"chunks"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

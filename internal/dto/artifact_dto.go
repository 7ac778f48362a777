package dto

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type FlashcardsResponse struct {
	Flashcards string `json:"flashcards"`
}

type McqsResponse struct {
	Mcqs string `json:"mcqs"`
}

// ExportFile is a rendered artifact ready to be sent as an attachment.
type ExportFile struct {
	FileName string
	Content  []byte
}

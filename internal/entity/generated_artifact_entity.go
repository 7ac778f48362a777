package entity

import (
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
)

// GeneratedArtifact holds the lazily generated study material of one document.
// A nil field has not been generated yet.
type GeneratedArtifact struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Summary    *string
	Flashcards *string
	Mcqs       *string
}

// Field returns the stored value for kind; ok is false when it has not been generated.
func (a *GeneratedArtifact) Field(kind artifact.Kind) (value string, ok bool) {
	if a == nil {
		return "", false
	}
	var p *string
	switch kind {
	case artifact.Summary:
		p = a.Summary
	case artifact.Flashcards:
		p = a.Flashcards
	case artifact.MCQs:
		p = a.Mcqs
	}
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

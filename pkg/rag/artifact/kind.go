package artifact

import "fmt"

// Kind names one of the derived artifacts cached per document.
type Kind string

const (
	Summary    Kind = "summary"
	Flashcards Kind = "flashcards"
	MCQs       Kind = "mcqs"
)

// All lists every kind in a fixed order.
var All = []Kind{Summary, Flashcards, MCQs}

// Parse accepts the kind names and the "mcq" route spelling.
func Parse(s string) (Kind, error) {
	switch s {
	case "summary":
		return Summary, nil
	case "flashcards":
		return Flashcards, nil
	case "mcq", "mcqs":
		return MCQs, nil
	}
	return "", fmt.Errorf("unknown artifact kind %q", s)
}

// FileName is the fixed export name for the kind.
func (k Kind) FileName() string {
	return string(k) + ".pdf"
}

func (k Kind) String() string {
	return string(k)
}

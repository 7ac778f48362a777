package pdf

import (
	"bytes"
	"strings"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/gen2brain/go-fitz"
	"github.com/m-mizutani/goerr/v2"
)

var pdfMagic = []byte("%PDF-")

// Readers accept a header anywhere in the first KiB.
const headerWindow = 1024

// Extracted is the raw text of a document plus its page count.
type Extracted struct {
	Text  string
	Pages int
}

// Extractor pulls plain text out of a PDF byte stream.
type Extractor interface {
	Extract(data []byte) (*Extracted, error)
}

// FitzExtractor extracts text with MuPDF.
type FitzExtractor struct{}

func NewFitzExtractor() *FitzExtractor {
	return &FitzExtractor{}
}

// Extract joins page texts with a single space. A page MuPDF cannot read
// contributes an empty string.
func (e *FitzExtractor) Extract(data []byte) (*Extracted, error) {
	if !hasHeader(data) {
		return nil, goerr.Wrap(apperror.ErrDocumentParse, "missing PDF header", goerr.V("size", len(data)))
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, goerr.Wrap(apperror.ErrDocumentParse, "failed to open PDF", goerr.V("cause", err.Error()))
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, numPages)
	for i := 0; i < numPages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		pages[i] = text
	}

	return &Extracted{
		Text:  strings.Join(pages, " "),
		Pages: numPages,
	}, nil
}

func hasHeader(data []byte) bool {
	head := data
	if len(head) > headerWindow {
		head = head[:headerWindow]
	}
	return bytes.Contains(head, pdfMagic)
}

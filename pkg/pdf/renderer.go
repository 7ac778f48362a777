package pdf

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
)

const (
	fontFamily = "Arial"
	fontSize   = 12
	lineHeight = 8
)

// Renderer lays out text as a PDF, one paragraph per input line.
type Renderer interface {
	Render(text string) ([]byte, error)
}

type FpdfRenderer struct{}

func NewFpdfRenderer() *FpdfRenderer {
	return &FpdfRenderer{}
}

func (r *FpdfRenderer) Render(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont(fontFamily, "", fontSize)

	// Core fonts are cp1252; translate so accented text survives.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(text, "\n") {
		doc.MultiCell(0, lineHeight, tr(line), "", "", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to render PDF")
	}
	return buf.Bytes(), nil
}

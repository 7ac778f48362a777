package service

import (
	"context"
	"sync"
	"testing"

	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/pkg/embedding/embeddingtest"
	"pdf-qa-be/pkg/events"
	"pdf-qa-be/pkg/llm"
	"pdf-qa-be/pkg/pdf"
	"pdf-qa-be/pkg/rag/session"
	"pdf-qa-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type stubExtractor struct {
	mu    sync.Mutex
	text  string
	pages int
	err   error
	calls int
}

func (s *stubExtractor) Extract(data []byte) (*pdf.Extracted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &pdf.Extracted{Text: s.text, Pages: s.pages}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(text string) ([]byte, error) {
	return []byte("%PDF-1.3\n" + text), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

var nopLogger = logger.NewNopLogger()

// activate puts chunks into s as the active document, embedded with the letter stub.
func activate(t *testing.T, s *session.RetrievalSession, chunks []string) uuid.UUID {
	t.Helper()
	vectors, err := (&embeddingtest.Letters{}).Encode(context.Background(), chunks)
	require.NoError(t, err)
	index, err := vectorindex.NewFlat(vectors)
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, s.Replace(session.Ready{
		DocumentId: id,
		Filename:   "notes.pdf",
		Chunks:     chunks,
		Index:      index,
	}))
	return id
}

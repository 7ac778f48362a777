package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/repository/memory"
	"pdf-qa-be/internal/repository/unitofwork/unitofworktest"
	"pdf-qa-be/pkg/events"
	"pdf-qa-be/pkg/rag/artifact"
	"pdf-qa-be/pkg/rag/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type artifactFixture struct {
	svc       IArtifactService
	uow       *unitofworktest.Factory
	session   *session.RetrievalSession
	llm       *mockLLM
	publisher *recordingPublisher
	exportDir string
}

func newArtifactFixture(t *testing.T) *artifactFixture {
	t.Helper()
	f := &artifactFixture{
		uow:       unitofworktest.NewFactory(),
		session:   session.New(),
		llm:       &mockLLM{},
		publisher: &recordingPublisher{},
		exportDir: t.TempDir(),
	}
	f.svc = f.newService()
	return f
}

// newService builds a fresh service (empty hot cache) over the same state.
func (f *artifactFixture) newService() IArtifactService {
	return NewArtifactService(f.uow, f.session, f.llm, memory.NewArtifactCache(time.Minute), stubRenderer{}, f.publisher, nopLogger, nopLogger, ArtifactOptions{
		ContextChunks:     6,
		GenerationTimeout: time.Second,
		ExportDir:         f.exportDir,
	})
}

func numberedChunks(n int) []string {
	chunks := make([]string, n)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk%02d", i)
	}
	return chunks
}

func TestArtifactGet_NoDocument(t *testing.T) {
	f := newArtifactFixture(t)

	for _, kind := range artifact.All {
		_, err := f.svc.Get(context.Background(), kind)
		assert.ErrorIs(t, err, apperror.ErrNotReady)
	}
	f.llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestArtifactGet_DocumentWithoutText(t *testing.T) {
	f := newArtifactFixture(t)
	activate(t, f.session, []string{})

	_, err := f.svc.Get(context.Background(), artifact.Summary)
	assert.ErrorIs(t, err, apperror.ErrNotReady)
	f.llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestArtifactGet_GeneratesOnce(t *testing.T) {
	f := newArtifactFixture(t)
	docId := activate(t, f.session, numberedChunks(8))

	var prompt string
	f.llm.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("- point one\n- point two", nil).Once()

	first, err := f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)
	second, err := f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)

	assert.Equal(t, "- point one\n- point two", first)
	assert.Equal(t, first, second)
	f.llm.AssertNumberOfCalls(t, "Generate", 1)

	// Context is the first six chunks in document order.
	assert.Contains(t, prompt, "Create a concise bullet-point summary:\nchunk00 chunk01 chunk02 chunk03 chunk04 chunk05")
	assert.NotContains(t, prompt, "chunk06")

	stored := f.uow.Store.Artifacts[docId]
	require.NotNil(t, stored)
	require.NotNil(t, stored.Summary)
	assert.Nil(t, stored.Flashcards)
	assert.Nil(t, stored.Mcqs)

	assert.Equal(t, []string{events.TypeArtifactGenerated}, f.publisher.Types())
}

func TestArtifactGet_PersistedValueSurvivesColdCache(t *testing.T) {
	f := newArtifactFixture(t)
	activate(t, f.session, numberedChunks(2))
	f.llm.On("Generate", mock.Anything, mock.Anything).Return("Q: a\nA: b", nil).Once()

	_, err := f.svc.Get(context.Background(), artifact.Flashcards)
	require.NoError(t, err)

	got, err := f.newService().Get(context.Background(), artifact.Flashcards)
	require.NoError(t, err)
	assert.Equal(t, "Q: a\nA: b", got)
	f.llm.AssertNumberOfCalls(t, "Generate", 1)
}

func TestArtifactGet_KindsAreIndependent(t *testing.T) {
	f := newArtifactFixture(t)
	docId := activate(t, f.session, numberedChunks(2))
	f.llm.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Create a concise")
	})).Return("summary text", nil).Once()
	f.llm.On("Generate", mock.Anything, mock.Anything).Return("mcq text", nil).Once()

	s, err := f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)
	m, err := f.svc.Get(context.Background(), artifact.MCQs)
	require.NoError(t, err)

	assert.Equal(t, "summary text", s)
	assert.Equal(t, "mcq text", m)
	stored := f.uow.Store.Artifacts[docId]
	assert.Equal(t, "summary text", *stored.Summary)
	assert.Equal(t, "mcq text", *stored.Mcqs)
	assert.Equal(t, 2, f.uow.Store.SetFieldCalls)
}

func TestArtifactGet_ConcurrentFirstRequestsGenerateOnce(t *testing.T) {
	f := newArtifactFixture(t)
	activate(t, f.session, numberedChunks(3))
	f.llm.On("Generate", mock.Anything, mock.Anything).
		After(20*time.Millisecond).
		Return("Q1?", nil)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.svc.Get(context.Background(), artifact.MCQs)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "Q1?", r)
	}
	f.llm.AssertNumberOfCalls(t, "Generate", 1)
}

func TestArtifactGet_GenerationFailureStoresNothing(t *testing.T) {
	f := newArtifactFixture(t)
	docId := activate(t, f.session, numberedChunks(2))
	f.llm.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota")).Once()

	_, err := f.svc.Get(context.Background(), artifact.Summary)
	assert.ErrorIs(t, err, apperror.ErrUpstream)
	assert.Nil(t, f.uow.Store.Artifacts[docId])
}

func TestArtifactGet_NewDocumentStartsFresh(t *testing.T) {
	f := newArtifactFixture(t)
	activate(t, f.session, numberedChunks(2))
	f.llm.On("Generate", mock.Anything, mock.Anything).Return("old summary", nil).Once()
	f.llm.On("Generate", mock.Anything, mock.Anything).Return("new summary", nil).Once()

	_, err := f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)

	activate(t, f.session, numberedChunks(4))
	got, err := f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)
	assert.Equal(t, "new summary", got)
}

func TestArtifactExport(t *testing.T) {
	f := newArtifactFixture(t)

	_, err := f.svc.Export(context.Background(), artifact.Summary)
	assert.ErrorIs(t, err, apperror.ErrArtifactNotGenerated, "no active document")

	activate(t, f.session, numberedChunks(2))
	_, err = f.svc.Export(context.Background(), artifact.Summary)
	assert.ErrorIs(t, err, apperror.ErrArtifactNotGenerated)

	f.llm.On("Generate", mock.Anything, mock.Anything).Return("line one\nline two", nil).Once()
	_, err = f.svc.Get(context.Background(), artifact.Summary)
	require.NoError(t, err)

	file, err := f.svc.Export(context.Background(), artifact.Summary)
	require.NoError(t, err)
	assert.Equal(t, "summary.pdf", file.FileName)
	assert.Contains(t, string(file.Content), "line one\nline two")

	onDisk, err := os.ReadFile(filepath.Join(f.exportDir, "summary.pdf"))
	require.NoError(t, err)
	assert.Equal(t, file.Content, onDisk)

	_, err = f.svc.Export(context.Background(), artifact.Flashcards)
	assert.ErrorIs(t, err, apperror.ErrArtifactNotGenerated, "other kinds stay missing")
}

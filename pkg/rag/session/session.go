package session

import (
	"context"
	"strings"
	"sync"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/pkg/embedding"
	"pdf-qa-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// State is either Empty or Ready.
type State interface {
	isState()
}

// Empty means no document has been activated yet.
type Empty struct{}

// Ready binds the active document to its chunk sequence and index.
// Chunks[i] is row i of Index.
type Ready struct {
	DocumentId uuid.UUID
	Filename   string
	Chunks     []string
	Index      vectorindex.Index
}

func (Empty) isState() {}
func (Ready) isState() {}

// Lead returns the first n chunks in document order.
func (r Ready) Lead(n int) []string {
	if n > len(r.Chunks) {
		n = len(r.Chunks)
	}
	if n < 0 {
		n = 0
	}
	return r.Chunks[:n]
}

// Retrieval is the outcome of one query against a single snapshot.
type Retrieval struct {
	DocumentId uuid.UUID
	RowIds     []int
	Chunks     []string
}

// Context joins the retrieved chunks with single spaces.
func (r Retrieval) Context() string {
	return strings.Join(r.Chunks, " ")
}

// RetrievalSession is the process-wide active-document state.
// Replace swaps the whole Ready value under the write lock; readers take a
// snapshot under the read lock and never observe a partial replacement.
type RetrievalSession struct {
	mu    sync.RWMutex
	state State
}

func New() *RetrievalSession {
	return &RetrievalSession{state: Empty{}}
}

// Replace activates next, discarding whatever was active before.
func (s *RetrievalSession) Replace(next Ready) error {
	if next.Index == nil {
		return goerr.New("ready state requires an index", goerr.V("document_id", next.DocumentId))
	}
	if next.Index.Len() != len(next.Chunks) {
		return goerr.New("chunk sequence and index disagree",
			goerr.V("document_id", next.DocumentId),
			goerr.V("chunks", len(next.Chunks)),
			goerr.V("rows", next.Index.Len()),
		)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current state value.
func (s *RetrievalSession) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Active returns the Ready snapshot, or ErrNotReady when nothing is active.
func (s *RetrievalSession) Active() (Ready, error) {
	switch st := s.Snapshot().(type) {
	case Ready:
		return st, nil
	default:
		return Ready{}, goerr.Wrap(apperror.ErrNotReady, "no active document")
	}
}

// Retrieve embeds question and returns the k nearest chunks of the snapshot
// taken at call time. An Empty session or an empty index fails before the
// embedder is called.
func (s *RetrievalSession) Retrieve(ctx context.Context, embedder embedding.Embedder, question string, k int) (*Retrieval, error) {
	ready, err := s.Active()
	if err != nil {
		return nil, err
	}
	if ready.Index.Len() == 0 {
		return nil, goerr.Wrap(apperror.ErrNotReady, "active document has no text", goerr.V("document_id", ready.DocumentId))
	}

	vectors, err := embedder.Encode(ctx, []string{question})
	if err != nil {
		return nil, apperror.Upstream(err, "failed to embed question")
	}
	if len(vectors) != 1 {
		return nil, goerr.Wrap(apperror.ErrUpstream, "embedder returned wrong number of vectors", goerr.V("got", len(vectors)))
	}

	ids, err := ready.Index.Search(ctx, vectors[0], k)
	if err != nil {
		return nil, err
	}

	hits := make([]string, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(ready.Chunks) {
			return nil, goerr.New("index returned unknown row", goerr.V("row", id), goerr.V("rows", len(ready.Chunks)))
		}
		hits = append(hits, ready.Chunks[id])
	}

	return &Retrieval{
		DocumentId: ready.DocumentId,
		RowIds:     ids,
		Chunks:     hits,
	}, nil
}

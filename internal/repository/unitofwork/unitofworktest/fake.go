// Package unitofworktest provides an in-memory unit of work for service tests.
// Only the specifications the services use are understood; others are ignored.
package unitofworktest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/internal/repository/specification"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
)

// Store is the shared backing state of every unit of work a Factory hands out.
type Store struct {
	mu        sync.Mutex
	Documents []*entity.Document
	Chunks    []*entity.DocumentChunk
	Records   []*entity.ChatRecord
	Artifacts map[uuid.UUID]*entity.GeneratedArtifact

	// Failure injection.
	ChatRecordErr error
	DocumentErr   error
	SetFieldErr   error

	SetFieldCalls int
}

func NewStore() *Store {
	return &Store{Artifacts: make(map[uuid.UUID]*entity.GeneratedArtifact)}
}

type Factory struct {
	Store *Store
}

func NewFactory() *Factory {
	return &Factory{Store: NewStore()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.Store}
}

// unitOfWork stages writes made inside Begin and applies them on Commit.
type unitOfWork struct {
	store   *Store
	inTx    bool
	pending []func()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.store.mu.Lock()
	for _, apply := range u.pending {
		apply()
	}
	u.store.mu.Unlock()
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.pending = nil
	u.inTx = false
	return nil
}

// write applies fn now, or on Commit when a transaction is open.
func (u *unitOfWork) write(fn func()) {
	if u.inTx {
		u.pending = append(u.pending, fn)
		return
	}
	u.store.mu.Lock()
	fn()
	u.store.mu.Unlock()
}

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepo{u}
}

func (u *unitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &chunkRepo{u}
}

func (u *unitOfWork) ChatRecordRepository() contract.ChatRecordRepository {
	return &chatRecordRepo{u}
}

func (u *unitOfWork) GeneratedArtifactRepository() contract.GeneratedArtifactRepository {
	return &artifactRepo{u}
}

func documentFilter(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if by, ok := s.(specification.ByDocumentID); ok {
			return by.DocumentID, true
		}
	}
	return uuid.Nil, false
}

func idFilter(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if by, ok := s.(specification.ByID); ok {
			return by.ID, true
		}
	}
	return uuid.Nil, false
}

type documentRepo struct{ u *unitOfWork }

func (r *documentRepo) Create(ctx context.Context, document *entity.Document) error {
	if r.u.store.DocumentErr != nil {
		return r.u.store.DocumentErr
	}
	if document.Id == uuid.Nil {
		document.Id = uuid.New()
	}
	copied := *document
	r.u.write(func() { r.u.store.Documents = append(r.u.store.Documents, &copied) })
	return nil
}

func (r *documentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *documentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	id, byID := idFilter(specs)
	var out []*entity.Document
	for _, d := range r.u.store.Documents {
		if byID && d.Id != id {
			continue
		}
		copied := *d
		out = append(out, &copied)
	}
	for _, s := range specs {
		if _, ok := s.(specification.NewestUploadFirst); ok {
			sort.SliceStable(out, func(i, j int) bool { return out[i].UploadTime.After(out[j].UploadTime) })
		}
	}
	return out, nil
}

type chunkRepo struct{ u *unitOfWork }

func (r *chunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	copies := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		copied := *c
		copies[i] = &copied
	}
	r.u.write(func() { r.u.store.Chunks = append(r.u.store.Chunks, copies...) })
	return nil
}

func (r *chunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	docId, scoped := documentFilter(specs)
	var n int64
	for _, c := range r.u.store.Chunks {
		if !scoped || c.DocumentId == docId {
			n++
		}
	}
	return n, nil
}

func (r *chunkRepo) SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	type scored struct {
		index int
		dist  float32
	}
	var rows []scored
	for _, c := range r.u.store.Chunks {
		if c.DocumentId != documentId {
			continue
		}
		var d float32
		for i := range query {
			diff := query[i] - c.Embedding[i]
			d += diff * diff
		}
		rows = append(rows, scored{c.ChunkIndex, d})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].dist == rows[j].dist {
			return rows[i].index < rows[j].index
		}
		return rows[i].dist < rows[j].dist
	})
	if k > len(rows) {
		k = len(rows)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = rows[i].index
	}
	return out, nil
}

type chatRecordRepo struct{ u *unitOfWork }

func (r *chatRecordRepo) Create(ctx context.Context, record *entity.ChatRecord) error {
	if r.u.store.ChatRecordErr != nil {
		return r.u.store.ChatRecordErr
	}
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	copied := *record
	r.u.write(func() { r.u.store.Records = append(r.u.store.Records, &copied) })
	return nil
}

func (r *chatRecordRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRecord, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	docId, scoped := documentFilter(specs)
	var out []*entity.ChatRecord
	for _, c := range r.u.store.Records {
		if scoped && c.DocumentId != docId {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

type artifactRepo struct{ u *unitOfWork }

func (r *artifactRepo) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.GeneratedArtifact, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	a, ok := r.u.store.Artifacts[documentId]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *artifactRepo) SetField(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string) error {
	if r.u.store.SetFieldErr != nil {
		return r.u.store.SetFieldErr
	}
	r.u.write(func() {
		r.u.store.SetFieldCalls++
		a, ok := r.u.store.Artifacts[documentId]
		if !ok {
			a = &entity.GeneratedArtifact{Id: uuid.New(), DocumentId: documentId}
			r.u.store.Artifacts[documentId] = a
		}
		v := value
		switch kind {
		case artifact.Summary:
			a.Summary = &v
		case artifact.Flashcards:
			a.Flashcards = &v
		case artifact.MCQs:
			a.Mcqs = &v
		}
	})
	return nil
}

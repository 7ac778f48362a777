package vectorindex

import (
	"context"
	"errors"
	"testing"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSearcher struct {
	documentId uuid.UUID
	k          int
	result     []int
	err        error
}

func (r *recordingSearcher) SearchNearest(ctx context.Context, documentId uuid.UUID, query []float32, k int) ([]int, error) {
	r.documentId = documentId
	r.k = k
	return r.result, r.err
}

func TestStoreIndexDelegatesWithClampedK(t *testing.T) {
	docId := uuid.New()
	s := &recordingSearcher{result: []int{1, 0}}
	idx := NewStoreIndex(s, docId, 2, 3)

	ids, err := idx.Search(context.Background(), []float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, ids)
	assert.Equal(t, docId, s.documentId)
	assert.Equal(t, 2, s.k)
}

func TestStoreIndexEmpty(t *testing.T) {
	idx := NewStoreIndex(&recordingSearcher{}, uuid.New(), 0, 3)
	_, err := idx.Search(context.Background(), []float32{1, 2, 3}, 1)
	assert.True(t, errors.Is(err, apperror.ErrNotReady))
}

func TestStoreIndexPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("connection reset")
	idx := NewStoreIndex(&recordingSearcher{err: backendErr}, uuid.New(), 4, 2)

	_, err := idx.Search(context.Background(), []float32{1, 2}, 1)
	assert.True(t, errors.Is(err, backendErr))
}

package vectorindex

import (
	"context"
	"errors"
	"testing"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatSearchOrdersNearestFirst(t *testing.T) {
	idx, err := NewFlat([][]float32{
		{0, 0},
		{10, 10},
		{1, 1},
		{5, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, 2, idx.Dimension())

	ids, err := idx.Search(context.Background(), []float32{0.9, 0.9}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 3}, ids)
}

func TestFlatSearchClampsK(t *testing.T) {
	idx, err := NewFlat([][]float32{{1}, {2}})
	require.NoError(t, err)

	ids, err := idx.Search(context.Background(), []float32{2}, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, ids)

	ids, err = idx.Search(context.Background(), []float32{2}, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFlatSearchTiesKeepRowOrder(t *testing.T) {
	idx, err := NewFlat([][]float32{{1, 0}, {0, 1}, {-1, 0}})
	require.NoError(t, err)

	ids, err := idx.Search(context.Background(), []float32{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)
}

func TestFlatSearchEmptyIndexIsNotReady(t *testing.T) {
	idx, err := NewFlat(nil)
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1}, 1)
	assert.True(t, errors.Is(err, apperror.ErrNotReady))

	var unbuilt *FlatIndex
	_, err = unbuilt.Search(context.Background(), []float32{1}, 1)
	assert.True(t, errors.Is(err, apperror.ErrNotReady))
}

func TestFlatRejectsRaggedVectors(t *testing.T) {
	_, err := NewFlat([][]float32{{1, 2}, {3}})
	assert.True(t, errors.Is(err, apperror.ErrUpstream))
}

func TestFlatSearchDimensionMismatch(t *testing.T) {
	idx, err := NewFlat([][]float32{{1, 2}})
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1, 2, 3}, 1)
	assert.True(t, errors.Is(err, apperror.ErrUpstream))
}

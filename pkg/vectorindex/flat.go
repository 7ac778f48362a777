package vectorindex

import (
	"context"
	"sort"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/m-mizutani/goerr/v2"
)

// FlatIndex is an exact brute-force index using squared Euclidean distance.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

var _ Index = (*FlatIndex)(nil)

// NewFlat copies nothing; callers must not mutate vectors afterwards.
func NewFlat(vectors [][]float32) (*FlatIndex, error) {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, goerr.Wrap(apperror.ErrUpstream, "embedding dimension mismatch",
				goerr.V("row", i),
				goerr.V("want", dim),
				goerr.V("got", len(v)),
			)
		}
	}
	if len(vectors) > 0 && dim == 0 {
		return nil, goerr.Wrap(apperror.ErrUpstream, "embedding model returned empty vectors")
	}
	return &FlatIndex{dim: dim, vectors: vectors}, nil
}

func (f *FlatIndex) Len() int {
	return len(f.vectors)
}

func (f *FlatIndex) Dimension() int {
	return f.dim
}

type scored struct {
	row  int
	dist float64
}

func (f *FlatIndex) Search(ctx context.Context, query []float32, k int) ([]int, error) {
	if f == nil || len(f.vectors) == 0 {
		return nil, goerr.Wrap(apperror.ErrNotReady, "index is empty")
	}
	if len(query) != f.dim {
		return nil, goerr.Wrap(apperror.ErrUpstream, "query dimension does not match index",
			goerr.V("index_dim", f.dim),
			goerr.V("query_dim", len(query)),
		)
	}
	if k <= 0 {
		return []int{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := make([]scored, len(f.vectors))
	for i, v := range f.vectors {
		all[i] = scored{row: i, dist: squaredL2(v, query)}
	}
	// Stable keeps row order for equal distances.
	sort.SliceStable(all, func(a, b int) bool {
		return all[a].dist < all[b].dist
	})

	if k > len(all) {
		k = len(all)
	}
	ids := make([]int, k)
	for i := 0; i < k; i++ {
		ids[i] = all[i].row
	}
	return ids, nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

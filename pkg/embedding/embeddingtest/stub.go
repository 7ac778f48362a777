// Package embeddingtest provides a deterministic Embedder for tests.
package embeddingtest

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// Dimension of vectors produced by Letters.
const Dimension = 27

// Letters embeds text as its letter histogram plus a length slot.
// Texts sharing letters land close together, which is enough to make
// retrieval assertions deterministic.
type Letters struct {
	mu    sync.Mutex
	calls int
	Err   error
}

func (l *Letters) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, Dimension)
		for _, r := range strings.ToLower(text) {
			if r >= 'a' && r <= 'z' {
				v[r-'a']++
			} else if unicode.IsSpace(r) {
				v[26] += 0.01
			}
		}
		out[i] = v
	}
	return out, nil
}

// Calls is the number of Encode invocations.
func (l *Letters) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}


package memory

import (
	"context"
	"time"

	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ArtifactCache struct {
	cache *cache.Cache
}

var _ contract.ArtifactCache = (*ArtifactCache)(nil)

// NewArtifactCache keeps entries for ttl and purges expired ones every ttl/6.
func NewArtifactCache(ttl time.Duration) *ArtifactCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ArtifactCache{
		cache: cache.New(ttl, ttl/6),
	}
}

func (r *ArtifactCache) Get(ctx context.Context, documentId uuid.UUID, kind artifact.Kind) (string, bool) {
	if x, found := r.cache.Get(contract.ArtifactCacheKey(documentId, kind)); found {
		return x.(string), true
	}
	return "", false
}

func (r *ArtifactCache) Set(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string) {
	r.cache.Set(contract.ArtifactCacheKey(documentId, kind), value, cache.DefaultExpiration)
}

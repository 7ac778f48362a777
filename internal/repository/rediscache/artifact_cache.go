package rediscache

import (
	"context"
	"errors"
	"time"

	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ArtifactCache shares artifact values between instances through redis.
// Redis failures are logged and treated as misses.
type ArtifactCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

var _ contract.ArtifactCache = (*ArtifactCache)(nil)

func NewArtifactCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *ArtifactCache {
	return &ArtifactCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *ArtifactCache) Get(ctx context.Context, documentId uuid.UUID, kind artifact.Kind) (string, bool) {
	val, err := c.rdb.Get(ctx, contract.ArtifactCacheKey(documentId, kind)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Redis get failed", map[string]interface{}{
				"document_id": documentId.String(),
				"kind":        string(kind),
				"error":       err.Error(),
			})
		}
		return "", false
	}
	return val, true
}

func (c *ArtifactCache) Set(ctx context.Context, documentId uuid.UUID, kind artifact.Kind, value string) {
	if err := c.rdb.Set(ctx, contract.ArtifactCacheKey(documentId, kind), value, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Redis set failed", map[string]interface{}{
			"document_id": documentId.String(),
			"kind":        string(kind),
			"error":       err.Error(),
		})
	}
}

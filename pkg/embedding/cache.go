package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// CachedProvider wraps a provider with a Redis lookaside cache keyed by
// content hash. Repeated utterances and catalog refreshes of unchanged
// products skip the network entirely. Cache failures fall through to the
// inner provider, never to the caller.
type CachedProvider struct {
	inner  EmbeddingProvider
	rdb    *redis.Client
	logger *log.Logger
}

func NewCachedProvider(inner EmbeddingProvider, rdb *redis.Client, logger *log.Logger) EmbeddingProvider {
	return &CachedProvider{inner: inner, rdb: rdb, logger: logger}
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := cacheKey(text, taskType)

	if raw, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached EmbeddingResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// corrupt entry, drop it
		p.rdb.Del(ctx, key)
	}

	res, err := p.inner.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(res); err == nil {
		if err := p.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			p.logger.Printf("[WARN] Embedding cache write failed: %v", err)
		}
	}

	return res, nil
}

func cacheKey(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return fmt.Sprintf("embed:%x", sum)
}

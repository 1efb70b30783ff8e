package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// PackRepository caches whole packs in Redis as JSON and falls back to a
// loader on cache miss. Grading needs the full round/question structure, so
// the cache stores the marshaled pack rather than a per-question projection:
// SET trivia:pack:{packID} {json}
type PackRepository struct {
	client *redis.Client
	loader memory.PackLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewPackRepository(client *redis.Client, loader memory.PackLoader, ttl time.Duration) *PackRepository {
	return &PackRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PackRepository) GetPack(ctx context.Context, packID string) (domain.Pack, error) {
	key := r.key(packID)

	if pack, ok := r.cached(ctx, key); ok {
		return pack, nil
	}

	result, err, _ := r.sf.Do(packID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pack, ok := r.cached(ctx, key); ok {
			return pack, nil
		}

		pack, err := r.loader.LoadPack(ctx, packID)
		if err != nil {
			return domain.Pack{}, err
		}

		if data, err := json.Marshal(pack); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return pack, nil
	})
	if err != nil {
		return domain.Pack{}, err
	}
	return result.(domain.Pack), nil
}

func (r *PackRepository) cached(ctx context.Context, key string) (domain.Pack, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.Pack{}, false
	}
	var pack domain.Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return domain.Pack{}, false
	}
	return pack, true
}

func (r *PackRepository) key(packID string) string {
	return "trivia:pack:" + packID
}

func (r *PackRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

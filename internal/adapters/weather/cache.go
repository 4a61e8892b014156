package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const defaultCacheKey = "pos:weather:current"

// cacheClient is the slice of the go-redis client the cache uses.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider serves the last snapshot from redis for ttl and only calls
// the upstream provider on a miss. Cache failures fall through to upstream.
type CachedProvider struct {
	upstream portssvc.WeatherProvider
	client   cacheClient
	key      string
	ttl      time.Duration
}

func NewCachedProvider(upstream portssvc.WeatherProvider, client cacheClient, ttl time.Duration) *CachedProvider {
	return &CachedProvider{upstream: upstream, client: client, key: defaultCacheKey, ttl: ttl}
}

func (p *CachedProvider) CurrentConditions(ctx context.Context) (*domain.WeatherSnapshot, error) {
	raw, err := p.client.Get(ctx, p.key).Bytes()
	switch {
	case err == nil:
		var snap domain.WeatherSnapshot
		if jerr := json.Unmarshal(raw, &snap); jerr == nil {
			return &snap, nil
		}
		slog.Warn("Discarding unreadable cached weather snapshot", slog.String("key", p.key))
	case !errors.Is(err, redis.Nil):
		slog.Warn("Weather cache read failed", slog.String("error", err.Error()))
	}

	snap, err := p.upstream.CurrentConditions(ctx)
	if err != nil {
		return nil, err
	}

	if body, jerr := json.Marshal(snap); jerr == nil {
		if serr := p.client.Set(ctx, p.key, body, p.ttl).Err(); serr != nil {
			slog.Warn("Weather cache write failed", slog.String("error", serr.Error()))
		}
	}
	return snap, nil
}

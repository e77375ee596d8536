package refdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"scanhub/internal/refdata/metrics"
)

// CachedGateway decorates a Gateway with a read-through redis cache.
// Reference data is hot and slow-changing, so cached entries carry a TTL and
// empty results are cached too (negative caching keeps a flood of unmatched
// PTI URNs from hammering the upstream). Cache failures fall through to the
// inner gateway; the cache is never the reason a lookup fails.
type CachedGateway struct {
	inner   Gateway
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCachedGateway wraps inner with a redis cache.
func NewCachedGateway(inner Gateway, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *CachedGateway {
	return &CachedGateway{inner: inner, client: client, ttl: ttl, logger: logger, metrics: m}
}

func (g *CachedGateway) OrgCodeByCaseReference(ctx context.Context, ref string) (string, error) {
	return g.lookup(ctx, "org_code", "refdata:orgcode:"+ref, ref, g.inner.OrgCodeByCaseReference)
}

func (g *CachedGateway) ShortNameByOrgCode(ctx context.Context, code string) (string, error) {
	return g.lookup(ctx, "short_name", "refdata:shortname:"+code, code, g.inner.ShortNameByOrgCode)
}

func (g *CachedGateway) lookup(ctx context.Context, kind, key, arg string, fetch func(context.Context, string) (string, error)) (string, error) {
	cached, err := g.client.Get(ctx, key).Result()
	if err == nil {
		g.metrics.RecordCacheHit(kind)
		return cached, nil
	}
	if err != redis.Nil {
		g.logger.WarnContext(ctx, "reference-data cache read failed", "kind", kind, "error", err)
	}

	value, err := fetch(ctx, arg)
	if err != nil {
		return "", err
	}
	if setErr := g.client.Set(ctx, key, value, g.ttl).Err(); setErr != nil {
		g.logger.WarnContext(ctx, "reference-data cache write failed", "kind", kind, "error", setErr)
	}
	return value, nil
}

package predicthq

import (
	"context"
	"fmt"

	"github.com/fieldsense/location-insights/internal/cache"
	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/observability"
)

// CachedRadiusAdvisor wraps a RadiusAdvisor with a bounded LRU memo. The
// suggestion is a pure function of its input tuple, so a repeat call with
// identical arguments must not reach the network.
type CachedRadiusAdvisor struct {
	inner   domain.RadiusAdvisor
	cache   *cache.LRU[domain.RadiusSuggestion]
	metrics *observability.Metrics
}

// NewCachedRadiusAdvisor creates a memo decorator around a radius advisor.
func NewCachedRadiusAdvisor(inner domain.RadiusAdvisor, maxEntries int, metrics *observability.Metrics) *CachedRadiusAdvisor {
	return &CachedRadiusAdvisor{
		inner:   inner,
		cache:   cache.NewLRU[domain.RadiusSuggestion](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedRadiusAdvisor) SuggestRadius(ctx context.Context, lat, lon float64, unit, industry string) (domain.RadiusSuggestion, error) {
	key := fmt.Sprintf("%.6f,%.6f|%s|%s", lat, lon, unit, industry)
	if suggestion, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("radius", "hit").Inc()
		return suggestion, nil
	}
	c.metrics.CacheLookups.WithLabelValues("radius", "miss").Inc()

	suggestion, err := c.inner.SuggestRadius(ctx, lat, lon, unit, industry)
	if err != nil {
		return suggestion, err
	}
	c.cache.Put(key, suggestion)
	return suggestion, nil
}

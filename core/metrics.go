package core

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/accept-cache/accept-cache/core"

// metrics holds the instruments for cache behavior. Instruments are
// created against the globally registered meter provider; with none
// registered they are no-ops.
type metrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(meterName)
	return &metrics{
		hits:      counter(meter, "acceptcache.lookup.hits", "Negotiation outcomes served from cache", "{lookup}"),
		misses:    counter(meter, "acceptcache.lookup.misses", "Negotiation outcomes computed fresh", "{lookup}"),
		evictions: counter(meter, "acceptcache.evictions", "Outcomes evicted by the size bound", "{entry}"),
	}
}

func counter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Could not create counter")
		c, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter(name)
	}
	return c
}

func (m *metrics) hit(family Family) {
	m.hits.Add(context.Background(), 1, familyAttr(family))
}

func (m *metrics) miss(family Family) {
	m.misses.Add(context.Background(), 1, familyAttr(family))
}

func (m *metrics) evicted(n int) {
	if n > 0 {
		m.evictions.Add(context.Background(), int64(n))
	}
}

func familyAttr(family Family) metric.AddOption {
	return metric.WithAttributes(attribute.String("family", string(family)))
}

// SPDX-License-Identifier: ice License 1.0

package bounds

import (
	"io"

	"github.com/rcrowley/go-metrics"

	"github.com/ice-blockchain/nostrcore/model"
)

type (
	Config struct {
		// MaxUnlimited is the largest theoretical limit a filter without `limit` may have.
		MaxUnlimited int `mapstructure:"maxUnlimited"`
		// DefaultLimit is applied to limit-less filters above MaxUnlimited. Zero disables it.
		DefaultLimit int `mapstructure:"defaultLimit"`
	}
	Guard struct {
		cfg     Config
		metrics metrics.Registry
	}
)

const (
	StatFiltersTotal     = "filters.total"
	StatFiltersDropped   = "filters.dropped"
	StatFiltersClamped   = "filters.clamped"
	StatFiltersDefaulted = "filters.defaulted"
	StatFiltersEphemeral = "filters.ephemeral"
	StatTheoreticalLimit = "filters.theoreticalLimit"
)

func New(cfg *Config) *Guard {
	g := &Guard{
		cfg:     *cfg,
		metrics: metrics.NewRegistry(),
	}
	if g.cfg.MaxUnlimited < 0 {
		g.cfg.MaxUnlimited = 0
	}
	for _, name := range []string{StatFiltersTotal, StatFiltersDropped, StatFiltersClamped, StatFiltersDefaulted, StatFiltersEphemeral} {
		metrics.GetOrRegisterCounter(name, g.metrics)
	}
	metrics.GetOrRegisterHistogram(StatTheoreticalLimit, g.metrics, metrics.NewExpDecaySample(10000, 0.15))

	return g
}

// Apply returns the filters worth executing: filters that can never match are dropped, explicit
// limits above the theoretical limit are lowered to it and limit-less filters that could return
// more than MaxUnlimited events get DefaultLimit. Input filters are never modified.
func (g *Guard) Apply(filters model.Filters) model.Filters {
	result := make(model.Filters, 0, len(filters))
	for i := range filters {
		g.counter(StatFiltersTotal).Inc(1)
		limit := filters[i].TheoreticalLimit()
		if limit != model.Unbounded {
			g.metrics.Get(StatTheoreticalLimit).(metrics.Histogram).Update(int64(limit))
		}
		if isEphemeralOnly(&filters[i]) {
			g.counter(StatFiltersEphemeral).Inc(1)
		}
		switch {
		case limit == 0:
			g.counter(StatFiltersDropped).Inc(1)

			continue
		case filters[i].Limit != nil && *filters[i].Limit > limit:
			g.counter(StatFiltersClamped).Inc(1)
			result = append(result, withLimit(&filters[i], limit))
		case filters[i].Limit == nil && limit > g.cfg.MaxUnlimited && g.cfg.DefaultLimit > 0:
			g.counter(StatFiltersDefaulted).Inc(1)
			result = append(result, withLimit(&filters[i], g.cfg.DefaultLimit))
		default:
			result = append(result, filters[i])
		}
	}

	return result
}

func (g *Guard) Count(name string) int64 {
	return g.counter(name).Count()
}

func (g *Guard) WriteStats(w io.Writer) {
	metrics.WriteJSONOnce(g.metrics, w)
}

func (g *Guard) counter(name string) metrics.Counter {
	return g.metrics.Get(name).(metrics.Counter)
}

func withLimit(f *model.Filter, limit int) model.Filter {
	clone := f.Clone()
	clone.Limit = &limit

	return clone
}

func isEphemeralOnly(f *model.Filter) bool {
	if len(f.Kinds) == 0 {
		return false
	}
	for _, k := range f.Kinds {
		if !k.IsEphemeral() {
			return false
		}
	}

	return true
}

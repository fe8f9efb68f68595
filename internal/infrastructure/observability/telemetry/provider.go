package telemetry

import (
	"github.com/payforge/checkout/internal/observability"
)

type provider struct {
	tracer     observability.Tracer
	logger     observability.Logger
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// New assembles a Telemetry provider backed by the supplied tracer, logger,
// and metric instruments. Missing pieces fall back to nop implementations so
// lookups never return nil.
func New(
	tracer observability.Tracer,
	logger observability.Logger,
	counters map[observability.MetricKey]observability.Counter,
	histograms map[observability.MetricKey]observability.Histogram,
) observability.Telemetry {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	counterCopy := make(map[observability.MetricKey]observability.Counter, len(counters))
	for k, v := range counters {
		if v != nil {
			counterCopy[k] = v
		}
	}

	histogramCopy := make(map[observability.MetricKey]observability.Histogram, len(histograms))
	for k, v := range histograms {
		if v != nil {
			histogramCopy[k] = v
		}
	}

	return &provider{
		tracer:     tracer,
		logger:     logger,
		counters:   counterCopy,
		histograms: histogramCopy,
	}
}

func (p *provider) Tracer() observability.Tracer { return p.tracer }

func (p *provider) Logger() observability.Logger { return p.logger }

func (p *provider) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := p.counters[name]; ok {
		return c
	}
	return observability.NopTelemetry().Counter(name)
}

func (p *provider) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := p.histograms[name]; ok {
		return h
	}
	return observability.NopTelemetry().Histogram(name)
}

package metrics

import (
	"isolation/meta"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "isolation"

// Sink exports search activity to Prometheus. Series are labelled by
// difficulty so presets can be compared on one dashboard.
type Sink struct {
	searches     *prometheus.CounterVec
	simulations  *prometheus.CounterVec
	fullPlayouts *prometheus.CounterVec
	reused       *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewSink registers the search metrics on reg. A nil reg uses the default registry.
func NewSink(reg prometheus.Registerer) *Sink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := []string{"difficulty"}

	return &Sink{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Completed searches",
		}, labels),
		simulations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "simulations_total",
			Help:      "Playouts run across all searches",
		}, labels),
		fullPlayouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "full_playouts_total",
			Help:      "Playouts that reached a finished game before the depth cutoff",
		}, labels),
		reused: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "tree_reused_total",
			Help:      "Searches that started from a subtree of the previous search",
		}, labels),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "fallbacks_total",
			Help:      "Moves substituted because the search produced no candidate",
		}, labels),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time per search",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		}, labels),
	}
}

// Record adds one finished search.
func (s *Sink) Record(m SearchMetric) {
	d := m.Difficulty
	s.searches.WithLabelValues(d).Inc()
	s.simulations.WithLabelValues(d).Add(float64(m.Simulations))
	s.fullPlayouts.WithLabelValues(d).Add(float64(m.FullPlayouts))
	if !m.IsTreeReset {
		s.reused.WithLabelValues(d).Inc()
	}
	s.duration.WithLabelValues(d).Observe(m.Duration.Seconds())
}

func (s *Sink) Fallback(difficulty meta.Difficulty) {
	s.fallbacks.WithLabelValues(string(difficulty)).Inc()
}

// Collector returns a collector that forwards every completed search to s.
func (s *Sink) Collector() Collector {
	return &sinkCollector{Collector: NewCollector(), sink: s}
}

type sinkCollector struct {
	Collector
	sink *Sink
}

func (c *sinkCollector) Complete() SearchMetric {
	m := c.Collector.Complete()
	c.sink.Record(m)
	return m
}

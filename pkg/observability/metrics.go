package observability

import (
	"net/http"
	"time"

	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/traits"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one process.
type Metrics struct {
	registry    *prometheus.Registry
	diagnostics *prometheus.CounterVec
	faults      *prometheus.CounterVec
	described   *prometheus.CounterVec
	fragments   *prometheus.HistogramVec
	tokens      prometheus.Histogram
	tokenizeDur prometheus.Histogram
}

// NewMetrics creates and registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_diagnostics_total",
				Help: "Diagnostics reported by the core, by level",
			},
			[]string{"level"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_trait_faults_total",
				Help: "Trait descriptors that panicked or failed",
			},
			[]string{"descriptor", "phase"},
		),
		described: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_describe_total",
				Help: "Describe calls, by host type",
			},
			[]string{"type"},
		),
		fragments: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quill_describe_fragments",
				Help:    "Fragments per description",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
			},
			[]string{"type"},
		),
		tokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quill_tokenize_tokens",
			Help:    "Tokens produced per tokenized line",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		tokenizeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quill_tokenize_duration_seconds",
			Help:    "Duration of tokenizer calls",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
	}

	m.registry.MustRegister(m.diagnostics, m.faults, m.described, m.fragments, m.tokens, m.tokenizeDur)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TraitFault implements traits.Observer.
func (m *Metrics) TraitFault(f *traits.FaultError) {
	m.faults.WithLabelValues(f.Descriptor, string(f.Phase)).Inc()
}

// Described implements traits.Observer.
func (m *Metrics) Described(key traits.TypeKey, fragments int) {
	label := string(key)
	if label == "" {
		label = "nil"
	}
	m.described.WithLabelValues(label).Inc()
	m.fragments.WithLabelValues(label).Observe(float64(fragments))
}

// ObserveTokenize records one tokenizer call.
func (m *Metrics) ObserveTokenize(tokens int, took time.Duration) {
	m.tokens.Observe(float64(tokens))
	m.tokenizeDur.Observe(took.Seconds())
}

// Sink wraps next so every diagnostic is counted before being forwarded.
// A nil next forwards to the process default at call time.
func (m *Metrics) Sink(next diag.Sink) diag.Sink {
	return &countingSink{next: next, counter: m.diagnostics}
}

type countingSink struct {
	next    diag.Sink
	counter *prometheus.CounterVec
}

func (s *countingSink) Log(msg string) {
	s.counter.WithLabelValues("log").Inc()
	diag.Or(s.next).Log(msg)
}

func (s *countingSink) Error(msg string) {
	s.counter.WithLabelValues("error").Inc()
	diag.Or(s.next).Error(msg)
}

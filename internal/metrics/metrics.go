// Package metrics exposes Prometheus collectors for service use cases,
// language model calls and cache sizes.
package metrics

import (
	"context"
	"net/http"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/llm"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "protrack"

// Metrics owns a private registry. It implements service.UseCaseObserver
// and llm.Observer.
type Metrics struct {
	registry *prometheus.Registry

	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	llmCalls        *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
}

var (
	_ service.UseCaseObserver = (*Metrics)(nil)
	_ llm.Observer            = (*Metrics)(nil)
)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		useCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_cases_total",
			Help:      "Service use cases by name and outcome.",
		}, []string{"use_case", "outcome"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Language model calls by task and error code.",
		}, []string{"task", "code"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "Language model call latency.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"task"}),
	}
	m.registry.MustRegister(
		m.useCases, m.useCaseDuration, m.llmCalls, m.llmLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	outcome := "ok"
	if !e.Success {
		outcome = "error"
	}
	m.useCases.WithLabelValues(e.Name, outcome).Inc()
	m.useCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

func (m *Metrics) OnCallComplete(e llm.CallEvent) {
	code := e.ErrorCode
	if e.Success {
		code = "OK"
	}
	m.llmCalls.WithLabelValues(string(e.Task), code).Inc()
	m.llmLatency.WithLabelValues(string(e.Task)).Observe(e.Latency.Seconds())
}

// WatchCache registers gauges reading collection sizes and load flags from
// c at scrape time.
func (m *Metrics) WatchCache(c *cache.Store) {
	for _, kind := range domain.Kinds {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "cache_entities",
			Help:        "Entities held in the client cache.",
			ConstLabels: prometheus.Labels{"kind": string(kind)},
		}, func() float64 {
			return float64(c.Counts()[kind])
		}))
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_loading",
		Help:      "1 while any load tier is in flight.",
	}, func() float64 {
		st := c.Status()
		if st.EssentialLoading || st.ProjectsLoading || st.TasksLoading || st.ActivitiesLoading {
			return 1
		}
		return 0
	}))
}

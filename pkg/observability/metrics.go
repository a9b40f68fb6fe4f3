package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "apinav"

// Metrics implements every hook interface on top of Prometheus collectors.
type Metrics struct {
	BuildsTotal          *prometheus.CounterVec
	BuildDurationSeconds prometheus.Histogram
	BuildNodes           prometheus.Histogram
	RendersTotal         *prometheus.CounterVec
	RenderDuration       *prometheus.HistogramVec
	CacheOpsTotal        *prometheus.CounterVec
	CacheBytesWritten    prometheus.Counter
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPDurationSeconds  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "builds_total",
			Help:      "Pipeline runs by status.",
		}, []string{"status"}),
		BuildDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "build_duration_seconds",
			Help:      "Duration of complete pipeline runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		BuildNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "document_nodes",
			Help:      "Number of service children per processed document.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "renders_total",
			Help:      "Rendered artifacts by output, format and status.",
		}, []string{"output", "format", "status"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "render_duration_seconds",
			Help:      "Duration of single artifact renders.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"output", "format"}),
		CacheOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		CacheBytesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m as the pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	SetPipelineHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnBuildStart does nothing; builds are recorded on completion.
func (m *Metrics) OnBuildStart(context.Context, []string) {}

// OnBuildComplete records a finished pipeline run.
func (m *Metrics) OnBuildComplete(_ context.Context, _ []string, nodeCount int, d time.Duration, err error) {
	m.BuildsTotal.WithLabelValues(status(err)).Inc()
	m.BuildDurationSeconds.Observe(d.Seconds())
	if err == nil {
		m.BuildNodes.Observe(float64(nodeCount))
	}
}

// OnRender records one rendered artifact.
func (m *Metrics) OnRender(_ context.Context, output, format string, d time.Duration, err error) {
	m.RendersTotal.WithLabelValues(output, format, status(err)).Inc()
	m.RenderDuration.WithLabelValues(output, format).Observe(d.Seconds())
}

// OnCacheHit records a cache hit.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss records a cache miss.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet records a cache write.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheBytesWritten.Add(float64(size))
}

// OnResponse records a served HTTP request.
func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)

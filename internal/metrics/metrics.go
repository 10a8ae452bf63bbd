package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus collectors for one cache process lifetime.
type Registry struct {
	LinesIn         prometheus.Counter
	LinesOut        prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	ChildBytesIn    prometheus.Counter
	ChildBytesOut   prometheus.Counter
	QueueDepth      prometheus.Gauge
	ChildExitCode   prometheus.Gauge
	Uptime          prometheus.Gauge

	startTime time.Time
}

// NewRegistry creates and registers the metrics for a single run, labeled
// with runID so a scrape can be correlated to the process that produced it.
func NewRegistry(runID string) *Registry {
	constLabels := prometheus.Labels{"run": runID}

	r := &Registry{
		startTime: time.Now(),

		LinesIn: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_lines_in_total",
			Help:        "Input lines read from upstream stdin.",
			ConstLabels: constLabels,
		}),
		LinesOut: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_lines_out_total",
			Help:        "Output lines written to downstream stdout.",
			ConstLabels: constLabels,
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_hits_total",
			Help:        "Fingerprint lookups that found an existing entry.",
			ConstLabels: constLabels,
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_misses_total",
			Help:        "Fingerprint lookups that created a new entry.",
			ConstLabels: constLabels,
		}),
		ChildBytesIn: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_child_bytes_in_total",
			Help:        "Bytes written to the child's standard input.",
			ConstLabels: constLabels,
		}),
		ChildBytesOut: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "cache_child_bytes_out_total",
			Help:        "Bytes read from the child's standard output.",
			ConstLabels: constLabels,
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "cache_queue_depth",
			Help:        "Approximate number of handles outstanding on the control queue.",
			ConstLabels: constLabels,
		}),
		ChildExitCode: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "cache_child_exit_code",
			Help:        "Exit status of the child process, set once after it is reaped.",
			ConstLabels: constLabels,
		}),
		Uptime: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "cache_uptime_seconds",
			Help:        "Seconds since this process started.",
			ConstLabels: constLabels,
		}),
	}

	go r.updateUptime()

	return r
}

func (r *Registry) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		r.Uptime.Set(time.Since(r.startTime).Seconds())
	}
}

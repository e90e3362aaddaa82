package httpapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts invocations by method and outcome.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	unhandled   prometheus.Counter
}

// NewMetrics registers the invocation collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tycoon_player_invocations_total",
			Help: "Total number of handled invocations by method and status code",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tycoon_player_invocation_duration_seconds",
			Help:    "Time spent handling one invocation",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		unhandled: factory.NewCounter(prometheus.CounterOpts{
			Name: "tycoon_player_unhandled_errors_total",
			Help: "Total number of invocations that failed without a response",
		}),
	}
}

func (m *Metrics) observe(method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(took.Seconds())
}

func (m *Metrics) observeUnhandled(method string, took time.Duration) {
	if m == nil {
		return
	}
	m.unhandled.Inc()
	m.duration.WithLabelValues(method).Observe(took.Seconds())
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of the service. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ExamsGenerated  *prometheus.CounterVec
	SelectionGap    *prometheus.CounterVec
	ExamsScored     prometheus.Counter
	ExamScores      prometheus.Histogram
	ProgressUpdates prometheus.Counter
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExamsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizbank_exams_generated_total",
				Help: "Number of exams generated, by selection mode",
			},
			[]string{"mode"},
		),
		SelectionGap: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizbank_selection_gap_questions_total",
				Help: "Questions that could not follow the difficulty quotas, by kind (fallback or missing)",
			},
			[]string{"kind"},
		),
		ExamsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizbank_exams_scored_total",
			Help: "Number of submitted exams recorded",
		}),
		ExamScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quizbank_exam_score_percent",
			Help:    "Distribution of recorded exam scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		ProgressUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizbank_progress_updates_total",
			Help: "Number of per-category progress increments",
		}),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
	}

	reg.MustRegister(
		m.ExamsGenerated,
		m.SelectionGap,
		m.ExamsScored,
		m.ExamScores,
		m.ProgressUpdates,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

func (m *Metrics) ObserveGenerated(mode string, fallback, missing int) {
	if m == nil {
		return
	}
	m.ExamsGenerated.WithLabelValues(mode).Inc()
	if fallback > 0 {
		m.SelectionGap.WithLabelValues("fallback").Add(float64(fallback))
	}
	if missing > 0 {
		m.SelectionGap.WithLabelValues("missing").Add(float64(missing))
	}
}

func (m *Metrics) ObserveScored(score float64) {
	if m == nil {
		return
	}
	m.ExamsScored.Inc()
	m.ExamScores.Observe(score)
}

func (m *Metrics) ObserveProgress(n int) {
	if m == nil {
		return
	}
	m.ProgressUpdates.Add(float64(n))
}

func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// Handler exposes the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

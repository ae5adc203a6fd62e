package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Clinical record metrics
	ledgerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Total number of answer and vitals ledger mutations",
		},
		[]string{"ledger", "operation", "outcome"},
	)

	vitalsDeltasRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitals_deltas_recorded_total",
			Help: "Total number of field level vitals deltas appended",
		},
	)

	workflowTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Total number of submission status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	optimisticConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimistic_conflicts_total",
			Help: "Total number of version conflicts hit while saving",
		},
		[]string{"resource"},
	)

	assignmentFanouts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assignment_fanout_submissions",
			Help:    "Number of submissions updated by one doctor reassignment",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	workflowEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_events_published_total",
			Help: "Total number of workflow events published to the broker",
		},
		[]string{"type", "outcome"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// routePattern keeps label cardinality bounded by using the matched route
// template instead of the raw path.
func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func RecordLedgerMutation(ledger, operation string, err error) {
	ledgerMutations.WithLabelValues(ledger, operation, outcome(err)).Inc()
}

func RecordVitalsDeltas(count int) {
	vitalsDeltasRecorded.Add(float64(count))
}

func RecordWorkflowTransition(fromStatus, toStatus string) {
	workflowTransitions.WithLabelValues(fromStatus, toStatus).Inc()
}

func RecordOptimisticConflict(resource string) {
	optimisticConflicts.WithLabelValues(resource).Inc()
}

func RecordAssignmentFanout(submissions int64) {
	assignmentFanouts.Observe(float64(submissions))
}

func RecordWorkflowEventPublished(eventType string, err error) {
	workflowEventsPublished.WithLabelValues(eventType, outcome(err)).Inc()
}

package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SessionsStarted counts logins that issued a session token.
	SessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_started_total",
			Help: "Total number of sessions issued",
		},
	)

	// SessionsPurged counts expired sessions removed by the purge job.
	SessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_purged_total",
			Help: "Total number of expired sessions purged",
		},
	)

	// TodosFinished counts open-to-finished todo transitions.
	TodosFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "todos_finished_total",
			Help: "Total number of todos marked finished",
		},
	)
)

var (
	numericPathSegment  = regexp.MustCompile(`/[0-9]+(/|$)`)
	usernamePathSegment = regexp.MustCompile(`^/user/[^/]+`)
	initOnce            sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, SessionsStarted, SessionsPurged, TodosFinished)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}
// and usernames with {username}. E.g. /user/alice/todolist/123 ->
// /user/{username}/todolist/{id}.
func NormalizePath(path string) string {
	path = usernamePathSegment.ReplaceAllString(path, "/user/{username}")
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

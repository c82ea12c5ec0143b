// Package metrics содержит счётчики Prometheus для вызовов движка.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SuggestionsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchplay_suggestions_computed_total",
		Help: "Number of partner suggestion lists computed.",
	})

	RatingsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchplay_ratings_updated_total",
		Help: "Number of completed matches that triggered a rating update.",
	})

	BracketsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchplay_brackets_generated_total",
		Help: "Number of tournament brackets generated.",
	})

	AttendanceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchplay_attendance_events_total",
		Help: "Number of attendance events applied to reliability scores.",
	}, []string{"kind"})
)

// Handler отдаёт /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToggleTotal counts toggle operations by relation (friendship, like) and resulting state.
	ToggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labook_toggle_total",
		Help: "Total number of relation toggles by resulting state",
	}, []string{"relation", "state"})

	// AuthAttempts counts signup and login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labook_auth_attempts_total",
		Help: "Total number of signup and login attempts by outcome",
	}, []string{"operation", "outcome"})
)

// RecordToggle increments ToggleTotal for the state a toggle ended in.
func RecordToggle(relation string, present bool) {
	state := "absent"
	if present {
		state = "present"
	}
	ToggleTotal.WithLabelValues(relation, state).Inc()
}

// RecordAuth increments AuthAttempts; a nil err is counted as success.
func RecordAuth(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

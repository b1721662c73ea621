package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_optimizer"

var (
	tasksSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_submitted_total",
			Help:      "Total number of backend tasks submitted, by task kind.",
		},
		[]string{"kind"},
	)

	pollAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_attempts_total",
			Help:      "Total number of task status queries, by observed status.",
		},
		[]string{"status"},
	)

	stageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_transitions_total",
			Help:      "Total number of workflow stage transitions, by flow and target stage.",
		},
		[]string{"flow", "stage"},
	)
)

func init() {
	prometheus.MustRegister(tasksSubmitted, pollAttempts, stageTransitions)
}

func IncTaskSubmitted(kind string) {
	tasksSubmitted.WithLabelValues(kind).Inc()
}

func IncPollAttempt(status string) {
	pollAttempts.WithLabelValues(status).Inc()
}

func IncStageTransition(flow, stage string) {
	stageTransitions.WithLabelValues(flow, stage).Inc()
}

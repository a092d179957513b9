package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counters for the review surface. Registered once in main.
var (
	ResolvesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "proof_resolves_total",
			Help: "Total number of token resolutions",
		},
	)

	AnnotationsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "annotations_created_total",
			Help: "Total number of annotations committed",
		},
	)

	AnnotationsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "annotations_deleted_total",
			Help: "Total number of annotations deleted",
		},
	)

	SignOffsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "proof_signoffs_total",
			Help: "Total number of successful sign-offs",
		},
	)

	SignOffConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "proof_signoff_conflicts_total",
			Help: "Sign-off attempts that lost to an earlier approval",
		},
	)
)

func Register(r prometheus.Registerer) {
	r.MustRegister(
		ResolvesTotal,
		AnnotationsCreatedTotal,
		AnnotationsDeletedTotal,
		SignOffsTotal,
		SignOffConflictsTotal,
	)
}

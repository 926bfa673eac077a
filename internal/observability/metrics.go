// Package observability holds the application's Prometheus instruments.
// The HTTP-level request metrics come from the fiberprometheus middleware;
// these counters track domain events.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsCreated counts filed reports by category.
	ReportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civictide_reports_created_total",
		Help: "Total number of reports filed, by category",
	}, []string{"category"})

	// StatusTransitions counts admin status updates by target status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civictide_report_status_transitions_total",
		Help: "Total number of report status updates, by new status",
	}, []string{"status"})

	// VotesToggled counts vote toggles by direction.
	VotesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civictide_votes_toggled_total",
		Help: "Total number of vote toggles, by resulting direction",
	}, []string{"direction"})

	// EmailsSent counts notification emails by kind and outcome.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civictide_emails_sent_total",
		Help: "Total number of notification emails attempted, by kind and outcome",
	}, []string{"kind", "outcome"})

	// ImageUploads counts report photo uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civictide_image_uploads_total",
		Help: "Total number of report photo uploads, by outcome",
	}, []string{"outcome"})
)

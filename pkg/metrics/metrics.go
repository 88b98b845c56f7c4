package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RSVPSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "rsvp_submissions_total",
		Help:      "Saved RSVP responses by attendance.",
	}, []string{"attendance"})

	RSVPRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "rsvp_rejected_total",
		Help:      "RSVP requests rejected before reaching the database.",
	}, []string{"reason"})

	MirroredImages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding",
		Name:      "mirrored_images_total",
		Help:      "Image mirror attempts by outcome.",
	}, []string{"outcome"})
)

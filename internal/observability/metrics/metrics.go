// Package metrics exposes Prometheus counters for the reservation
// lifecycle. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_reservations_created_total",
		Help: "Reservations confirmed.",
	})

	ReservationsExtended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_reservations_extended_total",
		Help: "Successful reservation extensions.",
	})

	ReservationsEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_reservations_ended_total",
		Help: "Reservations ended by the payer.",
	})

	ReservationsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_reservations_expired_total",
		Help: "Reservations expired by the monitor or the sweep job.",
	})

	ChargesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_charges_applied_total",
		Help: "Successful balance charges.",
	})

	ChargesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "totalpark_charges_rejected_total",
		Help: "Charges rejected for insufficient funds.",
	})
)

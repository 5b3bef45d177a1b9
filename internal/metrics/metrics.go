package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the engine's business outcomes
type Metrics struct {
	admissions    *prometheus.CounterVec
	retirements   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New registers the engine metrics on the given registry
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		admissions: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_admissions_total",
				Help: "Enrollment admission attempts by result",
			},
			[]string{"result"},
		),
		retirements: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_practice_retirements_total",
				Help: "Practice retirement attempts by result",
			},
			[]string{"result"},
		),
		notifications: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_notifications_total",
				Help: "Member notification attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// IncAdmission counts one admission attempt
func (m *Metrics) IncAdmission(result string) {
	m.admissions.WithLabelValues(result).Inc()
}

// IncRetirement counts one retirement attempt
func (m *Metrics) IncRetirement(result string) {
	m.retirements.WithLabelValues(result).Inc()
}

// IncNotification counts one notification attempt
func (m *Metrics) IncNotification(outcome string) {
	m.notifications.WithLabelValues(outcome).Inc()
}

package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics 业务计数；为 nil 时不记录
type Metrics struct {
	matchesRecorded prometheus.Counter
	matchesDeleted  prometheus.Counter
	loginFailures   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		matchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_recorded_total",
			Help: "Matches successfully recorded",
		}),
		matchesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_deleted_total",
			Help: "Matches deleted",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_login_failures_total",
			Help: "Rejected login attempts",
		}),
	}
	reg.MustRegister(m.matchesRecorded, m.matchesDeleted, m.loginFailures)
	return m
}

func (m *Metrics) matchRecorded() {
	if m != nil {
		m.matchesRecorded.Inc()
	}
}

func (m *Metrics) matchDeleted() {
	if m != nil {
		m.matchesDeleted.Inc()
	}
}

func (m *Metrics) loginFailed() {
	if m != nil {
		m.loginFailures.Inc()
	}
}

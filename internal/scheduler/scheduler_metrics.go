package scheduler

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Cycles        prometheus.Counter
	RemindersSent prometheus.Counter
	Missed        prometheus.Counter
	Failures      prometheus.Counter
}

// NewMetrics registers the scheduler counters with reg. A nil reg leaves
// them unregistered, which is what tests and one-off runs want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volunteer",
			Subsystem: "scheduler",
			Name:      "cycles_total",
			Help:      "Completed feedback deadline maintenance cycles.",
		}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volunteer",
			Subsystem: "scheduler",
			Name:      "reminders_sent_total",
			Help:      "Feedback reminders claimed and dispatched.",
		}),
		Missed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volunteer",
			Subsystem: "scheduler",
			Name:      "feedback_missed_total",
			Help:      "Attendance records voided after the feedback deadline passed.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volunteer",
			Subsystem: "scheduler",
			Name:      "record_failures_total",
			Help:      "Per-record failures skipped during a cycle.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Cycles, m.RemindersSent, m.Missed, m.Failures)
	}
	return m
}

func (m *Metrics) observe(res CycleResult) {
	m.Cycles.Inc()
	m.RemindersSent.Add(float64(res.RemindersSent))
	m.Missed.Add(float64(res.Missed))
	m.Failures.Add(float64(res.Failures))
}

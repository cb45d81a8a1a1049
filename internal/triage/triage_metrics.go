package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	AssessmentsTotal *prometheus.CounterVec
	HeartRate        prometheus.Histogram
	Oxygen           prometheus.Histogram
	PainLevel        prometheus.Histogram
	Temperature      prometheus.Histogram
	NotifyTotal      *prometheus.CounterVec
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_assessments_total",
			Help: "Total triage assessments by category.",
		}, []string{"category"}),
		HeartRate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulse_vitals_heart_rate_bpm",
			Help:    "Heart rate submitted for assessment.",
			Buckets: prometheus.LinearBuckets(40, 20, 10), // 40 .. 220
		}),
		Oxygen: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulse_vitals_oxygen_percent",
			Help:    "Oxygen saturation submitted for assessment.",
			Buckets: []float64{80, 85, 88, 90, 92, 94, 96, 98, 100},
		}),
		PainLevel: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulse_vitals_pain_level",
			Help:    "Pain level submitted for assessment.",
			Buckets: prometheus.LinearBuckets(0, 1, 11), // 0 .. 10
		}),
		Temperature: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulse_vitals_temperature_fahrenheit",
			Help:    "Body temperature submitted for assessment.",
			Buckets: prometheus.LinearBuckets(95, 1, 11), // 95 .. 105
		}),
		NotifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_notifications_total",
			Help: "Total notifications sent by category and status.",
		}, []string{"category", "status"}),
	}

	reg.MustRegister(
		m.AssessmentsTotal,
		m.HeartRate,
		m.Oxygen,
		m.PainLevel,
		m.Temperature,
		m.NotifyTotal,
	)

	return m
}

// Hooks returns ServiceHooks that update the corresponding metrics.
func (m *Metrics) Hooks() ServiceHooks {
	return ServiceHooks{
		OnAssess: func(c Category, v VitalSigns) {
			m.AssessmentsTotal.WithLabelValues(c.String()).Inc()
			m.HeartRate.Observe(float64(v.HeartRate))
			m.Oxygen.Observe(float64(v.Oxygen))
			m.PainLevel.Observe(float64(v.PainLevel))
			m.Temperature.Observe(v.Temperature)
		},
		OnNotify: func(c Category, err error) {
			status := "success"
			if err != nil {
				status = "error"
			}
			m.NotifyTotal.WithLabelValues(c.String(), status).Inc()
		},
	}
}

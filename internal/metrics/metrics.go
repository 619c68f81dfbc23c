// Package metrics instruments the dual-registry coordinator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry labels.
const (
	Primary   = "primary"
	Secondary = "secondary"
)

// Shadow failure stages.
const (
	StageInfo       = "info"
	StageBuild      = "build"
	StageRegister   = "register"
	StageUnregister = "unregister"
)

// Metrics tracks registrations on both registries and the health of the
// shadows.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Unregistrations *prometheus.CounterVec
	ShadowFailures  *prometheus.CounterVec
	ShadowsActive   prometheus.Gauge
	ShadowBuild     prometheus.Histogram
}

// New creates the coordinator metrics and registers them on reg. A nil reg
// leaves the metrics unregistered, which suits tests and embedded use.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beanbridge_registrations_total",
			Help: "Total number of successful bean registrations per registry",
		}, []string{"registry"}),
		Unregistrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beanbridge_unregistrations_total",
			Help: "Total number of successful bean unregistrations per registry",
		}, []string{"registry"}),
		ShadowFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beanbridge_shadow_failures_total",
			Help: "Total number of failed shadow registrations or unregistrations per stage",
		}, []string{"stage"}),
		ShadowsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "beanbridge_shadows_active",
			Help: "Number of beans that currently have a JSON shadow",
		}),
		ShadowBuild: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "beanbridge_shadow_build_duration_seconds",
			Help:    "Duration of introspecting a bean and building its shadow",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// IncRegistration records a successful registration on the given registry.
func (m *Metrics) IncRegistration(registry string) {
	m.Registrations.WithLabelValues(registry).Inc()
}

// IncUnregistration records a successful unregistration on the given registry.
func (m *Metrics) IncUnregistration(registry string) {
	m.Unregistrations.WithLabelValues(registry).Inc()
}

// IncShadowFailure records a shadow failure at the given stage.
func (m *Metrics) IncShadowFailure(stage string) {
	m.ShadowFailures.WithLabelValues(stage).Inc()
}

// SetShadowsActive records the size of the association set.
func (m *Metrics) SetShadowsActive(n int) {
	m.ShadowsActive.Set(float64(n))
}

// ObserveShadowBuild records the duration of a shadow build.
// Call with time.Now() at the start of the build.
func (m *Metrics) ObserveShadowBuild(start time.Time) {
	m.ShadowBuild.Observe(time.Since(start).Seconds())
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncRegistration(Primary)
	m.IncRegistration(Primary)
	m.IncRegistration(Secondary)
	m.IncUnregistration(Primary)
	m.IncShadowFailure(StageBuild)
	m.SetShadowsActive(3)
	m.ObserveShadowBuild(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues(Primary)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues(Secondary)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unregistrations.WithLabelValues(Primary)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShadowFailures.WithLabelValues(StageBuild)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ShadowsActive))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "beanbridge_registrations_total")
	assert.Contains(t, names, "beanbridge_shadow_build_duration_seconds")
}

func TestMetrics_NilRegisterer(t *testing.T) {
	m := New(nil)
	m.IncShadowFailure(StageInfo)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShadowFailures.WithLabelValues(StageInfo)))
}

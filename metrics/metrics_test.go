package metrics_test

import (
	"testing"

	"cs-balancer/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetBalancerGauges(t *testing.T) {
	metrics.AgentsAvailable.Set(4)
	metrics.AgentsAway.Set(2)
	metrics.CustomersAssigned.Set(10)
	metrics.CustomersUnassigned.Set(1)
	metrics.MaxCustomers.Set(5)

	metrics.ResetBalancerGauges()

	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.AgentsAvailable))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.AgentsAway))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CustomersAssigned))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CustomersUnassigned))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.MaxCustomers))
}

func TestRegisterRuntime_Idempotent(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.RegisterRuntime()
		metrics.RegisterRuntime()
	})

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveValidation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveValidation("equal", true, 0, 1)
	m.ObserveValidation("percentage", false, 2, 0)
	m.ObserveValidation("percentage", false, 1, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("equal", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("percentage", "rejected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ValidationIssues.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationIssues.WithLabelValues("warning")))

	expected := `
# HELP fairshare_expense_validations_total Expense reconciliation runs, by split mode and outcome.
# TYPE fairshare_expense_validations_total counter
fairshare_expense_validations_total{mode="equal",outcome="ok"} 1
fairshare_expense_validations_total{mode="percentage",outcome="rejected"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fairshare_expense_validations_total"))
}

func TestObserveValidation_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveValidation("equal", true, 0, 0) })
}

func TestNew_RegistersOncePerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

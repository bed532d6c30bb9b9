// Package metrics provides Prometheus observability metrics for the balancer.
// It covers the outcome of each balancing run and the health of roster parsing.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Run outcomes used as the "outcome" label of RunsTotal.
const (
	OutcomeWinner = "winner"
	OutcomeTie    = "tie"
	OutcomeEmpty  = "empty"
)

// =============================================================================
// BALANCER METRICS - Assignment Outcome
// =============================================================================

// AgentsAvailable tracks agents left after removing the away list.
var AgentsAvailable = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "agents_available",
	Help:      "Number of agents available for assignment in the last run",
})

// AgentsAway tracks rostered agents excluded by the away list.
var AgentsAway = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "agents_away",
	Help:      "Number of rostered agents excluded as away in the last run",
})

// CustomersAssigned tracks customers matched to an agent.
var CustomersAssigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "customers_assigned",
	Help:      "Number of customers assigned to an agent in the last run",
})

// CustomersUnassigned tracks customers whose score exceeded every available agent.
// Non-zero values mean the available team cannot cover the top of the customer base.
var CustomersUnassigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "customers_unassigned",
	Help:      "Number of customers no available agent could take in the last run",
})

// MaxCustomers tracks the highest per-agent customer count.
var MaxCustomers = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "max_customers",
	Help:      "Highest number of customers held by a single agent in the last run",
})

// RunsTotal counts balancing runs by outcome.
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "balancer",
	Name:      "runs_total",
	Help:      "Total balancing runs by outcome (winner, tie, empty)",
}, []string{"outcome"})

// BalancerDurationSeconds tracks time to balance a roster.
var BalancerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "balancer",
	Name:      "duration_seconds",
	Help:      "Time taken to assign customers and pick the winner",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
})

// =============================================================================
// PARSER METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV roster file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetBalancerGauges resets all balancer gauges before a new run.
// Call this at the start of Balance.
func ResetBalancerGauges() {
	AgentsAvailable.Set(0)
	AgentsAway.Set(0)
	CustomersAssigned.Set(0)
	CustomersUnassigned.Set(0)
	MaxCustomers.Set(0)
}

var runtimeOnce sync.Once

// RegisterRuntime adds the Go and process collectors to Registry.
// Safe to call more than once.
func RegisterRuntime() {
	runtimeOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

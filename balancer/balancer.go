// Package balancer assigns customers to customer success agents by score and
// reports the agent that ends up serving the most customers.
package balancer

import (
	"sort"
	"time"

	"cs-balancer/metrics"
	"cs-balancer/models"
)

// Execute returns the ID of the agent serving the most customers once every
// customer has been matched, or 0 when the top count is tied or there are no
// available agents.
func Execute(agents []models.Agent, customers []models.Customer, awayIDs []int) int {
	return Balance(agents, customers, awayIDs).WinnerID
}

// Balance runs the full assignment and returns the per-agent loads alongside
// the winner. Caller slices are never modified.
// Time: O(a log a + c log c) for the sorts + O(a + c) for assignment.
func Balance(agents []models.Agent, customers []models.Customer, awayIDs []int) *models.Result {
	start := time.Now()
	metrics.ResetBalancerGauges()

	available, excluded := filterAvailable(agents, awayIDs)
	sortedAgents := sortAgents(available)
	sortedCustomers := sortCustomers(customers)

	loads := make([]models.AgentLoad, len(sortedAgents))
	for i, a := range sortedAgents {
		loads[i] = models.AgentLoad{
			AgentID:   a.ID,
			Score:     a.Score,
			Customers: make([]int, 0),
		}
	}

	unassigned := assign(loads, sortedCustomers)
	winnerID, maxCustomers := pickWinner(loads)

	result := &models.Result{
		WinnerID:     winnerID,
		MaxCustomers: maxCustomers,
		Loads:        loads,
		Unassigned:   unassigned,
		Excluded:     excluded,
	}

	recordRun(result, len(customers))
	metrics.BalancerDurationSeconds.Observe(time.Since(start).Seconds())

	return result
}

// filterAvailable drops agents listed as away and reports which away IDs
// matched a rostered agent.
func filterAvailable(agents []models.Agent, awayIDs []int) ([]models.Agent, []int) {
	excluded := make([]int, 0)
	if len(awayIDs) == 0 {
		return agents, excluded
	}

	away := make(map[int]struct{}, len(awayIDs))
	for _, id := range awayIDs {
		away[id] = struct{}{}
	}

	available := make([]models.Agent, 0, len(agents))
	for _, a := range agents {
		if _, isAway := away[a.ID]; isAway {
			excluded = append(excluded, a.ID)
			continue
		}
		available = append(available, a)
	}
	return available, excluded
}

// sortAgents returns a copy of agents ordered by score, ascending.
func sortAgents(agents []models.Agent) []models.Agent {
	sorted := make([]models.Agent, len(agents))
	copy(sorted, agents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return sorted
}

// sortCustomers returns a copy of customers ordered by score, ascending.
func sortCustomers(customers []models.Customer) []models.Customer {
	sorted := make([]models.Customer, len(customers))
	copy(sorted, customers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return sorted
}

// assign gives each customer to the first agent whose score covers it.
// Both inputs are sorted ascending, so the matching agent for the next
// customer is never before the current one and a single cursor suffices.
// Customers above every agent's score are returned as unassigned.
func assign(loads []models.AgentLoad, customers []models.Customer) []int {
	unassigned := make([]int, 0)
	cursor := 0

	for _, c := range customers {
		for cursor < len(loads) && loads[cursor].Score < c.Score {
			cursor++
		}
		if cursor == len(loads) {
			unassigned = append(unassigned, c.ID)
			continue
		}
		loads[cursor].Customers = append(loads[cursor].Customers, c.ID)
	}

	return unassigned
}

// pickWinner folds over loads in score order keeping (bestID, bestCount).
// An equal count replaces the best ID with 0; only a strictly higher count
// can bring back a real ID. Starting from (0, 0) means agents with no
// customers tie the seed, so a run without customers yields 0.
func pickWinner(loads []models.AgentLoad) (int, int) {
	bestID, bestCount := 0, 0
	for _, l := range loads {
		count := len(l.Customers)
		switch {
		case count > bestCount:
			bestID, bestCount = l.AgentID, count
		case count == bestCount:
			bestID = 0
		}
	}
	return bestID, bestCount
}

func recordRun(result *models.Result, totalCustomers int) {
	metrics.AgentsAvailable.Set(float64(len(result.Loads)))
	metrics.AgentsAway.Set(float64(len(result.Excluded)))
	metrics.CustomersAssigned.Set(float64(totalCustomers - len(result.Unassigned)))
	metrics.CustomersUnassigned.Set(float64(len(result.Unassigned)))
	metrics.MaxCustomers.Set(float64(result.MaxCustomers))

	switch {
	case len(result.Loads) == 0:
		metrics.RunsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	case result.WinnerID == 0:
		metrics.RunsTotal.WithLabelValues(metrics.OutcomeTie).Inc()
	default:
		metrics.RunsTotal.WithLabelValues(metrics.OutcomeWinner).Inc()
	}
}

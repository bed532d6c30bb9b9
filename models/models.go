package models

// Agent is a customer success agent as supplied by the caller.
type Agent struct {
	ID    int `json:"id"`
	Score int `json:"score"`
}

// Customer is a customer waiting to be assigned to an agent.
type Customer struct {
	ID    int `json:"id"`
	Score int `json:"score"`
}

// Roster holds everything needed for one balancing run.
// It is shared across packages: the parser produces it and the balancer consumes it.
type Roster struct {
	Agents    []Agent
	Customers []Customer
	// Away lists agent IDs that must not receive customers in this run
	Away []int
}

// AgentLoad is the per-run assignment record for one available agent.
type AgentLoad struct {
	AgentID   int   `json:"agent_id"`
	Score     int   `json:"score"`
	Customers []int `json:"customers"`
}

// Result is the outcome of a balancing run.
type Result struct {
	// WinnerID is the agent serving the most customers, or 0 on a tie or
	// when there is nobody to pick.
	WinnerID     int `json:"winner_id"`
	MaxCustomers int `json:"max_customers"`
	// Loads are ordered by agent score, ascending
	Loads []AgentLoad `json:"loads"`
	// Unassigned holds customers whose score exceeds every available agent
	Unassigned []int `json:"unassigned"`
	// Excluded holds the away IDs that matched a rostered agent
	Excluded []int `json:"excluded"`
}

// Tied reports whether the top customer count is shared by more than one agent.
func (r *Result) Tied() bool {
	return r.WinnerID == 0 && len(r.Loads) > 0
}

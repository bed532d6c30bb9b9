package formatter

import (
	"cs-balancer/models"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResultData is the prepared view of a balancing result used by all formatters
type ResultData struct {
	Winner     WinnerInfo  `json:"winner"`
	Agents     []AgentData `json:"agents"`
	Unassigned []int       `json:"unassigned"`
	Away       []int       `json:"away"`
}

// WinnerInfo describes how the run was decided
type WinnerInfo struct {
	ID           int  `json:"id"`
	MaxCustomers int  `json:"max_customers"`
	Tied         bool `json:"tied"`
}

// AgentData holds one agent's load
type AgentData struct {
	ID        int   `json:"id"`
	Score     int   `json:"score"`
	Count     int   `json:"count"`
	Customers []int `json:"customers"`
	Winner    bool  `json:"winner"`
}

// prepareResultData flattens a result into the shape shared by every output format
func prepareResultData(result *models.Result) *ResultData {
	agents := make([]AgentData, len(result.Loads))
	for i, l := range result.Loads {
		customers := make([]int, len(l.Customers))
		copy(customers, l.Customers)
		agents[i] = AgentData{
			ID:        l.AgentID,
			Score:     l.Score,
			Count:     len(l.Customers),
			Customers: customers,
			Winner:    result.WinnerID != 0 && l.AgentID == result.WinnerID,
		}
	}

	unassigned := make([]int, len(result.Unassigned))
	copy(unassigned, result.Unassigned)
	away := make([]int, len(result.Excluded))
	copy(away, result.Excluded)

	return &ResultData{
		Winner: WinnerInfo{
			ID:           result.WinnerID,
			MaxCustomers: result.MaxCustomers,
			Tied:         result.Tied(),
		},
		Agents:     agents,
		Unassigned: unassigned,
		Away:       away,
	}
}

// FormatText returns the text representation of the result
func FormatText(result *models.Result) string {
	data := prepareResultData(result)
	var sb strings.Builder

	for _, agent := range data.Agents {
		sb.WriteString(formatTextLine(agent))
		sb.WriteString("\n")
	}

	if len(data.Away) > 0 {
		sb.WriteString(fmt.Sprintf("away: %s\n", joinIDs(data.Away, ", ")))
	}

	if len(data.Unassigned) > 0 {
		sb.WriteString(fmt.Sprintf("  ⚠️  UNASSIGNED: %d customer(s) above every available agent [%s]\n",
			len(data.Unassigned), joinIDs(data.Unassigned, ", ")))
	}

	sb.WriteString(formatWinnerLine(data.Winner, len(data.Agents)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatJSON returns the JSON representation of the result
func FormatJSON(result *models.Result) string {
	data := prepareResultData(result)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the result
func FormatCSV(result *models.Result) string {
	data := prepareResultData(result)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{"Agent", "Score", "Customers", "Customer IDs", "Winner"})

	for _, agent := range data.Agents {
		winner := "No"
		if agent.Winner {
			winner = "Yes"
		}
		writer.Write([]string{
			strconv.Itoa(agent.ID),
			strconv.Itoa(agent.Score),
			strconv.Itoa(agent.Count),
			joinIDs(agent.Customers, ";"),
			winner,
		})
	}

	writer.Flush()
	return sb.String()
}

// formatTextLine formats a single agent line for text output
func formatTextLine(agent AgentData) string {
	marker := ""
	if agent.Winner {
		marker = " *"
	}
	if agent.Count == 0 {
		return fmt.Sprintf("agent %d (score %d): 0 customers ; none%s", agent.ID, agent.Score, marker)
	}
	return fmt.Sprintf("agent %d (score %d): %d customers ; [%s]%s",
		agent.ID, agent.Score, agent.Count, joinIDs(agent.Customers, ", "), marker)
}

// formatWinnerLine summarizes how the run was decided
func formatWinnerLine(winner WinnerInfo, agents int) string {
	switch {
	case agents == 0:
		return "winner: 0 (no available agents)"
	case winner.Tied:
		return fmt.Sprintf("winner: 0 (tie at %d customers)", winner.MaxCustomers)
	default:
		return fmt.Sprintf("winner: %d (%d customers)", winner.ID, winner.MaxCustomers)
	}
}

// joinIDs renders ids with the given separator
func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

package parser

import (
	"cs-balancer/errors"
	"cs-balancer/metrics"
	"cs-balancer/models"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Record kinds accepted in the first column of a roster file.
const (
	KindAgent    = "agent"
	KindCustomer = "customer"
	KindAway     = "away"
)

// Parse reads a CSV roster from the reader.
// Lines starting with '#' are comments. Every other line starts with its kind:
//
//	agent, <id>, <score>
//	customer, <id>, <score>
//	away, <id>[, <id>...]
//
// Kinds are case-insensitive and may appear in any order. The parsed roster
// is checked with Validate before it is returned.
func Parse(r io.Reader) (*models.Roster, error) {
	start := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	roster := &models.Roster{
		Agents:    make([]models.Agent, 0),
		Customers: make([]models.Customer, 0),
		Away:      make([]int, 0),
	}
	lineNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		lineNum, _ = reader.FieldPos(0)

		if err := parseRecord(roster, record); err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    err,
			}
		}
		metrics.ParserRecordsTotal.Inc()
	}

	if err := Validate(roster); err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return nil, err
	}

	return roster, nil
}

func parseRecord(roster *models.Roster, record []string) error {
	if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
		return errors.ErrEmptyRecord
	}

	kind := strings.ToLower(strings.TrimSpace(record[0]))
	switch kind {
	case KindAgent, KindCustomer:
		if len(record) != 3 {
			return errors.ErrInvalidFieldCount
		}
		id, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrInvalidID, err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return fmt.Errorf("%w: %v", errors.ErrInvalidScore, err)
		}
		if kind == KindAgent {
			roster.Agents = append(roster.Agents, models.Agent{ID: id, Score: score})
		} else {
			roster.Customers = append(roster.Customers, models.Customer{ID: id, Score: score})
		}
	case KindAway:
		if len(record) < 2 {
			return errors.ErrInvalidFieldCount
		}
		for _, field := range record[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			id, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("%w: %v", errors.ErrInvalidID, err)
			}
			roster.Away = append(roster.Away, id)
		}
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownRecordType, record[0])
	}
	return nil
}

// Validate rejects rosters the balancer has no defined behavior for:
// non-positive IDs, negative scores and IDs repeated within agents or customers.
func Validate(roster *models.Roster) error {
	agentIDs := make(map[int]struct{}, len(roster.Agents))
	for _, a := range roster.Agents {
		if a.ID <= 0 {
			return fmt.Errorf("%w: agent %d", errors.ErrNonPositiveID, a.ID)
		}
		if a.Score < 0 {
			return fmt.Errorf("%w: agent %d has score %d", errors.ErrNegativeScore, a.ID, a.Score)
		}
		if _, dup := agentIDs[a.ID]; dup {
			return fmt.Errorf("%w: %d", errors.ErrDuplicateAgentID, a.ID)
		}
		agentIDs[a.ID] = struct{}{}
	}

	customerIDs := make(map[int]struct{}, len(roster.Customers))
	for _, c := range roster.Customers {
		if c.ID <= 0 {
			return fmt.Errorf("%w: customer %d", errors.ErrNonPositiveID, c.ID)
		}
		if c.Score < 0 {
			return fmt.Errorf("%w: customer %d has score %d", errors.ErrNegativeScore, c.ID, c.Score)
		}
		if _, dup := customerIDs[c.ID]; dup {
			return fmt.Errorf("%w: %d", errors.ErrDuplicateCustomerID, c.ID)
		}
		customerIDs[c.ID] = struct{}{}
	}

	for _, id := range roster.Away {
		if id <= 0 {
			return fmt.Errorf("%w: away %d", errors.ErrNonPositiveID, id)
		}
	}

	return nil
}

// errorType maps an error to the label used by ParserErrorsTotal.
func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrEmptyRecord):
		return "empty_record"
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case stderrors.Is(err, errors.ErrUnknownRecordType):
		return "unknown_record_type"
	case stderrors.Is(err, errors.ErrInvalidID):
		return "invalid_id"
	case stderrors.Is(err, errors.ErrInvalidScore):
		return "invalid_score"
	case stderrors.Is(err, errors.ErrDuplicateAgentID):
		return "duplicate_agent_id"
	case stderrors.Is(err, errors.ErrDuplicateCustomerID):
		return "duplicate_customer_id"
	case stderrors.Is(err, errors.ErrNegativeScore):
		return "negative_score"
	case stderrors.Is(err, errors.ErrNonPositiveID):
		return "non_positive_id"
	default:
		return "other"
	}
}

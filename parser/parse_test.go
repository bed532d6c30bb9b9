package parser_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"cs-balancer/balancer"
	customerrors "cs-balancer/errors"
	"cs-balancer/models"
	"cs-balancer/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input         string
		expected      *models.Roster
		expectedError error
	}{
		"ValidInput_AllKinds": {
			input: `
agent, 1, 60
agent, 2, 20
customer, 1, 90
customer, 2, 20
away, 2
`,
			expected: &models.Roster{
				Agents:    []models.Agent{{ID: 1, Score: 60}, {ID: 2, Score: 20}},
				Customers: []models.Customer{{ID: 1, Score: 90}, {ID: 2, Score: 20}},
				Away:      []int{2},
			},
		},
		"ValidInput_WithComments_MixedCase": {
			input: `
# kind, id, score
Agent, 1, 60
# customers follow
CUSTOMER, 7, 10
`,
			expected: &models.Roster{
				Agents:    []models.Agent{{ID: 1, Score: 60}},
				Customers: []models.Customer{{ID: 7, Score: 10}},
				Away:      []int{},
			},
		},
		"ValidInput_AwayListAcrossLines": {
			input: `
agent, 1, 60
agent, 2, 20
agent, 3, 95
away, 1, 3
away, 2,
`,
			expected: &models.Roster{
				Agents:    []models.Agent{{ID: 1, Score: 60}, {ID: 2, Score: 20}, {ID: 3, Score: 95}},
				Customers: []models.Customer{},
				Away:      []int{1, 3, 2},
			},
		},
		"ValidInput_Empty": {
			input: `# nothing here`,
			expected: &models.Roster{
				Agents:    []models.Agent{},
				Customers: []models.Customer{},
				Away:      []int{},
			},
		},
		"InvalidInput_FieldCount": {
			input:         `agent, 1`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"InvalidInput_AwayWithoutIDs": {
			input:         `away`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"InvalidInput_UnknownKind": {
			input:         `manager, 1, 10`,
			expectedError: customerrors.ErrUnknownRecordType,
		},
		"InvalidInput_ID": {
			input:         `customer, abc, 10`,
			expectedError: customerrors.ErrInvalidID,
		},
		"InvalidInput_Score": {
			input:         `customer, 1, high`,
			expectedError: customerrors.ErrInvalidScore,
		},
		"InvalidInput_AwayID": {
			input:         `away, 1, two`,
			expectedError: customerrors.ErrInvalidID,
		},
		"InvalidInput_DuplicateAgent": {
			input: `
agent, 1, 10
agent, 1, 20
`,
			expectedError: customerrors.ErrDuplicateAgentID,
		},
		"InvalidInput_DuplicateCustomer": {
			input: `
customer, 4, 10
customer, 4, 20
`,
			expectedError: customerrors.ErrDuplicateCustomerID,
		},
		"InvalidInput_NegativeScore": {
			input:         `agent, 1, -5`,
			expectedError: customerrors.ErrNegativeScore,
		},
		"InvalidInput_ZeroID": {
			input:         `customer, 0, 5`,
			expectedError: customerrors.ErrNonPositiveID,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := strings.NewReader(strings.TrimSpace(tt.input))
			got, err := parser.Parse(r)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Parse() error = %v, want %v", err, tt.expectedError)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_ErrorCarriesLine(t *testing.T) {
	input := "agent, 1, 60\n# comment\ncustomer, 1, oops\n"

	_, err := parser.Parse(strings.NewReader(input))
	require.Error(t, err)

	var parseErr *customerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, []string{"customer", "1", "oops"}, parseErr.Record)
	assert.Contains(t, err.Error(), "parse error at line 3")
}

func TestParse_SameIDAcrossKindsAllowed(t *testing.T) {
	// Agent and customer IDs live in separate namespaces
	got, err := parser.Parse(strings.NewReader("agent, 1, 10\ncustomer, 1, 10\n"))
	require.NoError(t, err)
	assert.Len(t, got.Agents, 1)
	assert.Len(t, got.Customers, 1)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		roster        *models.Roster
		expectedError error
	}{
		"Valid": {
			roster: &models.Roster{
				Agents:    []models.Agent{{ID: 1, Score: 0}},
				Customers: []models.Customer{{ID: 1, Score: 0}},
				Away:      []int{9},
			},
		},
		"EmptyRoster": {
			roster: &models.Roster{},
		},
		"NegativeCustomerScore": {
			roster: &models.Roster{
				Customers: []models.Customer{{ID: 1, Score: -1}},
			},
			expectedError: customerrors.ErrNegativeScore,
		},
		"NegativeAgentID": {
			roster: &models.Roster{
				Agents: []models.Agent{{ID: -3, Score: 1}},
			},
			expectedError: customerrors.ErrNonPositiveID,
		},
		"ZeroAwayID": {
			roster: &models.Roster{
				Away: []int{0},
			},
			expectedError: customerrors.ErrNonPositiveID,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := parser.Validate(tt.roster)
			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestParse_RosterFile(t *testing.T) {
	f, err := os.Open("testdata/roster.csv")
	require.NoError(t, err)
	defer f.Close()

	got, err := parser.Parse(f)
	require.NoError(t, err)
	assert.Len(t, got.Agents, 4)
	assert.Len(t, got.Customers, 6)
	assert.Equal(t, []int{2, 4}, got.Away)
	assert.Equal(t, 1, balancer.Execute(got.Agents, got.Customers, got.Away))
}

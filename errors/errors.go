package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Record-level errors raised while reading the roster file
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrUnknownRecordType = fmt.Errorf("unknown record type")
	ErrInvalidID         = fmt.Errorf("invalid id")
	ErrInvalidScore      = fmt.Errorf("invalid score")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// Roster-level errors raised by validation
var (
	ErrDuplicateAgentID    = fmt.Errorf("duplicate agent id")
	ErrDuplicateCustomerID = fmt.Errorf("duplicate customer id")
	ErrNegativeScore       = fmt.Errorf("negative score")
	ErrNonPositiveID       = fmt.Errorf("id must be positive")
)

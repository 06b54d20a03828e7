package coinledger

import (
	"errors"
	"fmt"
)

// ErrNoHistory is returned by the point-in-time operations when no trade or
// event exists at or before the requested timestamp. Callers present it as
// "no data", distinct from an actual failure.
var ErrNoHistory = errors.New("no historical data found until the given timestamp")

// DeserializationError marks a persisted row that could not be reconstructed
// into its domain object: a corrupt stored tuple, an unparsable amount, an
// unclassifiable event. It is fatal to the query that observes it. A ledger
// with silently skipped rows would misstate balances, so these are never
// retried or partially consumed.
type DeserializationError struct {
	Table string
	Row   string
	Err   error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("cannot deserialize %s row %s: %v", e.Table, e.Row, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

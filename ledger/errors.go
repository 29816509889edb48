package ledger

import "github.com/pkg/errors"

var (
	// ErrLedgerUnavailable is returned when a ledger cannot be opened or read.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrMalformedTransaction is returned when a stored transaction does not parse.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrOutputNotFound is returned when an output reference is not on the ledger.
	ErrOutputNotFound = errors.New("output not found")
)

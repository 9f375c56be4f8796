package scoring

import "fmt"

// The engine rejects bad scoring actions with one of three recoverable
// error kinds. A rejected action leaves the ledger and match untouched; the
// scorer corrects the input and retries.

// PreconditionError: a dependent piece of state is missing (no toss yet,
// striker or bowler slot unset).
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

// InvariantViolation: the action would break a match invariant (delivery
// after the match concluded, an eleventh wicket).
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string { return e.Msg }

// ValidationError: the input itself is malformed (runs out of range,
// unknown dismissal kind, missing fielder where one is required).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Preconditionf(format string, args ...interface{}) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

func Invariantf(format string, args ...interface{}) error {
	return &InvariantViolation{Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

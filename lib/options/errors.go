package options

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainNotSupported is returned for a domain outside SupportedDomains.
	ErrDomainNotSupported = errors.New("domain not supported")
	// ErrOptionNotFound is returned when a keyword suffix matches no setting.
	ErrOptionNotFound = errors.New("option not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("option validation failed")
	// ErrReconciliation is matched by every *ReconciliationError.
	ErrReconciliation = errors.New("option reconciliation failed")
	// ErrNoInformation means no assertion was found at the winning score.
	ErrNoInformation = errors.New("no information")
	// ErrConflictingRequirement means the top user and driver assertions disagree.
	ErrConflictingRequirement = errors.New("conflicting requirement")
	// ErrUnsupportedValueType is returned by NewSetting when V is an interface type.
	ErrUnsupportedValueType = errors.New("unsupported setting value type")
)

// ValidationError reports a value rejected by a setting's validator.
// It matches both ErrValidation and the validator's own error.
type ValidationError struct {
	Keyword string
	Value   any
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("option (%s) value (%v) does not pass: %v", e.Keyword, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// ReconciliationError reports a setting whose value cannot be resolved.
// Reason is ErrNoInformation or ErrConflictingRequirement.
type ReconciliationError struct {
	Keyword string
	Reason  error
	// User and Driver hold the disagreeing values for a conflict.
	User   any
	Driver any
}

func (e *ReconciliationError) Error() string {
	if errors.Is(e.Reason, ErrConflictingRequirement) {
		return fmt.Sprintf("option (%s): %v between user (%v) and driver (%v)",
			e.Keyword, e.Reason, e.User, e.Driver)
	}
	return fmt.Sprintf("option (%s): %v", e.Keyword, e.Reason)
}

func (e *ReconciliationError) Unwrap() []error {
	return []error{ErrReconciliation, e.Reason}
}

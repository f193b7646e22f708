// Package fault defines the rejection taxonomy shared by every mutating
// operation in the ledger core. Each rejection carries a Kind for
// programmatic handling and the exact message surfaced to the caller.
package fault

import "errors"

// Kind classifies why an operation was rejected.
type Kind uint8

const (
	// AccessDenied means the caller lacks the required role.
	AccessDenied Kind = iota + 1
	// StateGate means a sale-phase flag blocks the operation.
	StateGate
	// InvalidInput means an id, quantity, or batch shape is out of domain.
	InvalidInput
	// SupplyExceeded means a supply cap would be violated.
	SupplyExceeded
	// PaymentInsufficient means the payment or allowance does not cover the price.
	PaymentInsufficient
	// OwnershipViolation means a balance or ownership precondition failed on burn.
	OwnershipViolation
	// NotFound means the referenced token or class entry does not exist.
	NotFound
)

// String returns the taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case AccessDenied:
		return "AccessDenied"
	case StateGate:
		return "StateGate"
	case InvalidInput:
		return "InvalidInput"
	case SupplyExceeded:
		return "SupplyExceeded"
	case PaymentInsufficient:
		return "PaymentInsufficient"
	case OwnershipViolation:
		return "OwnershipViolation"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error is a rejection with a classified kind and a caller-visible message.
// The message is part of the operation contract and is never rewritten.
type Error struct {
	Kind Kind
	Msg  string
}

// Error returns the literal rejection message.
func (e *Error) Error() string { return e.Msg }

// New creates a rejection of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf returns the kind of err, or 0 if err is not a taxonomy rejection.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// Is reports whether err is a taxonomy rejection of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

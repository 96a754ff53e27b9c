package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies ledger failures so callers can distinguish a missing
// record from a denied one. The transport layer maps kinds to status codes.
type ErrorKind string

const (
	// KindInvalidArgument indicates a structurally bad request (missing or
	// out-of-range field) detected before any state is touched.
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindNotFound indicates a referenced id does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindUnauthorized indicates the caller lacks the required role or
	// ownership for the operation.
	KindUnauthorized ErrorKind = "unauthorized"

	// KindPreconditionFailed indicates a required external approval is
	// missing (KYC) or the record is in a state that forbids the operation
	// (e.g. a finalized trade).
	KindPreconditionFailed ErrorKind = "precondition_failed"

	// KindInvariantViolation indicates the operation would break a ledger
	// invariant: overselling an asset's supply, overfilling a trade,
	// deleting an asset that still backs token lots.
	KindInvariantViolation ErrorKind = "invariant_violation"

	// KindAlreadyExists indicates a uniqueness conflict, e.g. registering
	// an identity twice.
	KindAlreadyExists ErrorKind = "already_exists"

	// KindInternal indicates a collaborator or storage failure that is not
	// the caller's fault. Per the execution model the whole operation is
	// rejected, never partially applied.
	KindInternal ErrorKind = "internal"
)

// Error is the tagged failure result returned by every ledger operation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds a classified error from a format string.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification of err, or KindInternal for errors that
// did not originate in the ledger core.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

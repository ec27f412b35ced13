package scheduling

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so callers can branch on the kind
// rather than on message text.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "notFound"
	KindConflict   ErrorKind = "conflict"
	KindPolicy     ErrorKind = "policy"
)

// DomainError is a recognized domain failure. Anything else returned by the
// service is a transient store or encoding error.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the domain error kind, reporting false for errors that are
// not domain failures.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a domain failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func newValidationError(format string, args ...any) error {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func newNotFoundError(format string, args ...any) error {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func newConflictError(format string, args ...any) error {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func newPolicyError(format string, args ...any) error {
	return &DomainError{Kind: KindPolicy, Message: fmt.Sprintf(format, args...)}
}

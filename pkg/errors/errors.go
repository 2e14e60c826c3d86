// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUploadFailed    = errors.New("image upload failed")
	ErrPersistFailed   = errors.New("report could not be saved")
	ErrFetchFailed     = errors.New("reports could not be fetched")
)

// Kind classifies a failure surfaced by the report services.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindUpload
	KindPersist
	KindFetch
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationFailed"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindUpload:
		return "UploadFailed"
	case KindPersist:
		return "PersistFailed"
	case KindFetch:
		return "FetchFailed"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindUpload:
		return ErrUploadFailed
	case KindPersist:
		return ErrPersistFailed
	case KindFetch:
		return ErrFetchFailed
	default:
		return nil
	}
}

// Error is the typed failure returned by Submit and FetchRecent.
// Fields is only set for KindValidation.
type Error struct {
	Kind   Kind
	Op     string
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match an *Error against its kind's sentinel.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func Validation(op string, fields []string) *Error {
	return &Error{Kind: KindValidation, Op: op, Fields: fields}
}

func Unauthenticated(op string) *Error {
	return &Error{Kind: KindUnauthenticated, Op: op}
}

func Upload(op string, cause error) *Error {
	return &Error{Kind: KindUpload, Op: op, Err: cause}
}

func Persist(op string, cause error) *Error {
	return &Error{Kind: KindPersist, Op: op, Err: cause}
}

func Fetch(op string, cause error) *Error {
	return &Error{Kind: KindFetch, Op: op, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MissingFields returns the missing field names of a validation failure.
func MissingFields(err error) []string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindValidation {
		return e.Fields
	}
	return nil
}

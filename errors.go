package connstr

import (
	"errors"

	"github.com/ghettovoice/connstr/internal/errorutil"
)

// Error is a kind of connection string error.
// Every error returned by this package wraps one of the Err* constants,
// so callers can match them with [errors.Is] or recover the kind with [ErrorKind].
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMissingScheme is returned when the input has no "://" separator or an empty scheme.
	ErrMissingScheme Error = "missing scheme"
	// ErrSchemeMismatch is returned when the scheme differs from the one the parser expects.
	ErrSchemeMismatch Error = "scheme mismatch"
	// ErrMissingHost is returned when the host list or one of its entries is empty.
	ErrMissingHost Error = "missing host"
	// ErrInvalidPort is returned when a port is not a decimal number in range 0-65535.
	// Ports above 65535 are rejected too, even though the syntax only asks for a non-negative integer.
	ErrInvalidPort Error = "invalid port"
	// ErrMalformedInput is returned when an unescaped delimiter appears where the syntax forbids it.
	ErrMalformedInput Error = "malformed input"
	// ErrInvalidHost is returned by validation when a host is neither an IP address nor a domain name.
	ErrInvalidHost Error = "invalid host"
)

// ErrorKind returns the kind of err, if err was produced by this package.
func ErrorKind(err error) (Error, bool) {
	var kind Error
	if errors.As(err, &kind) {
		return kind, true
	}
	return "", false
}

func newErr(kind Error, args ...any) error {
	return errorutil.NewWrapperError(kind, args...) //errtrace:skip
}

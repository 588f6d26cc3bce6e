// Package errs defines the error kinds shared by every iceberg package.
//
// There are three user-facing kinds:
//
//   - ErrInvalidParameter: k < 1, syndrome rate < 1, or decoder/compile parameters disagree
//   - ErrUnsupportedGate: a logical gate has no transversal Iceberg translation
//   - ErrMalformedInput: bitstrings or serialized blobs that do not match the expected layout
//
// Detailed errors wrap their kind, so callers test with errors.Is:
//
//	res, err := decoder.Decode(counts, 4)
//	if errors.Is(err, errs.ErrMalformedInput) {
//	    // re-check the counts source
//	}
package errs

import "github.com/cockroachdb/errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnsupportedGate  = errors.New("unsupported gate")
	ErrMalformedInput   = errors.New("malformed input")
)

// Blob container errors. All of them are also ErrMalformedInput.
var (
	ErrInvalidHeaderSize = errors.Wrap(ErrMalformedInput, "invalid header size")
	ErrInvalidMagic      = errors.Wrap(ErrMalformedInput, "invalid magic number")
	ErrChecksumMismatch  = errors.Wrap(ErrMalformedInput, "checksum mismatch")
	ErrTruncatedPayload  = errors.Wrap(ErrMalformedInput, "truncated payload")
)

// InvalidParameter returns a formatted error wrapping ErrInvalidParameter.
func InvalidParameter(format string, args ...any) error {
	return errors.WrapWithDepthf(1, ErrInvalidParameter, format, args...)
}

// UnsupportedGate returns a formatted error wrapping ErrUnsupportedGate.
func UnsupportedGate(format string, args ...any) error {
	return errors.WrapWithDepthf(1, ErrUnsupportedGate, format, args...)
}

// MalformedInput returns a formatted error wrapping ErrMalformedInput.
func MalformedInput(format string, args ...any) error {
	return errors.WrapWithDepthf(1, ErrMalformedInput, format, args...)
}

// WithHint attaches a user-facing hint to err.
func WithHint(err error, hint string) error {
	return errors.WithHint(err, hint)
}

// Hints returns every hint attached to err, outermost first.
func Hints(err error) []string {
	return errors.GetAllHints(err)
}

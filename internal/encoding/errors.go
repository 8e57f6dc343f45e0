// Package encoding implements the binary primitives shared by every codec
// in the module: Bitcoin's VarInt, fixed-width little-endian integers, and
// the length-prefixed collection helpers built on top of them.
package encoding

import "fmt"

// ErrorCode identifies the kind of decode failure a caller hit.
type ErrorCode string

const (
	ErrInvalidVarInt ErrorCode = "ErrInvalidVarInt"
	ErrTruncated      ErrorCode = "ErrTruncated"
)

// Error is the error type returned by every fallible decoder in this
// package.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func newErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

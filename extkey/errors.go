package extkey

import "fmt"

type ErrorCode string

const (
	ErrInvalidXprv    ErrorCode = "ErrInvalidXprv"
	ErrInvalidXpub    ErrorCode = "ErrInvalidXpub"
	ErrInvalidPath    ErrorCode = "ErrInvalidPath"
	ErrHardenedFromPub ErrorCode = "ErrHardenedFromPub"
	ErrInvalidSeed    ErrorCode = "ErrInvalidSeed"
)

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

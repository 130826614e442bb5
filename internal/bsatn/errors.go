package bsatn

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTag     = errors.New("bsatn: invalid type tag")
	ErrBufferTooSmall = errors.New("bsatn: buffer too small")
	ErrInvalidUTF8    = errors.New("bsatn: invalid utf8 string")
	ErrOverflow       = errors.New("bsatn: integer overflow")
	ErrTooLarge       = errors.New("bsatn: payload too large")
	ErrUnsupported    = errors.New("bsatn: unsupported kind")
)

// Errorf adds the standard "bsatn:" prefix to formatted errors so helpers and
// callers remain consistent with the built-in Err* values.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("bsatn: "+format, args...)
}

// TagError reports an unexpected tag while decoding a value of some type.
type TagError struct {
	Type string
	Want byte
	Got  byte
}

func (e *TagError) Error() string {
	return fmt.Sprintf("bsatn: decoding %s: want %s, got %s", e.Type, TagToString(e.Want), TagToString(e.Got))
}

func (e *TagError) Unwrap() error {
	return ErrInvalidTag
}

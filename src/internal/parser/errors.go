package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// KindStructural is a bracket mismatch or an unexpected end of input.
	KindStructural ErrorKind = iota
	// KindUnknownConstruct is a top-level word that starts no declaration.
	KindUnknownConstruct
	// KindMalformedClause is a fixed-shape clause missing its keyword or terminator.
	KindMalformedClause
)

var (
	ErrStructural       = errors.New("structural error")
	ErrUnknownConstruct = errors.New("unknown construct")
	ErrMalformedClause  = errors.New("malformed clause")

	// ErrReused is returned when Parse is called twice on one Parser.
	ErrReused = errors.New("parser instance already used")
	// ErrInvalidSentinel is returned by Parse when Options.Sentinel could be
	// mistaken for source text or a token boundary.
	ErrInvalidSentinel = errors.New("invalid sentinel")
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural error"
	case KindUnknownConstruct:
		return "unknown construct"
	case KindMalformedClause:
		return "malformed clause"
	}
	return "parse error"
}

// Error is a fatal parse failure. Pos is the raw cursor into the normalized
// buffer at the point the failure was detected.
type Error struct {
	Kind ErrorKind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Msg)
}

// Unwrap exposes the sentinel for the error kind so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindStructural:
		return ErrStructural
	case KindUnknownConstruct:
		return ErrUnknownConstruct
	case KindMalformedClause:
		return ErrMalformedClause
	}
	return nil
}

func structuralf(pos int, format string, args ...interface{}) error {
	return &Error{Kind: KindStructural, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func unknownf(pos int, format string, args ...interface{}) error {
	return &Error{Kind: KindUnknownConstruct, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func malformedf(pos int, format string, args ...interface{}) error {
	return &Error{Kind: KindMalformedClause, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

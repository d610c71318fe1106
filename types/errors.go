package types

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindWrongType         ErrorKind = "wrong_type"
	KindNotPresent        ErrorKind = "not_present"
	KindTimeout           ErrorKind = "timeout"
	KindConnectionFailure ErrorKind = "connection_failure"
	KindParseFailure      ErrorKind = "parse_failure"
	KindGeneric           ErrorKind = "generic"
)

// Error is the error type returned by file operations, the command parser and the
// inference client. Op names the failing operation; Path is optional.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Msg  string
	Err  error
}

func NewError(kind ErrorKind, op, path, msg string) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: msg}
}

func WrapError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	switch {
	case e.Path != "" && msg != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	case msg != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf classifies err. Anything that is not a *Error is Generic.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return KindGeneric
}

// Message returns the human part of err without the op/path prefix when err is a *Error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Kind)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

package errcode

import (
	"errors"

	"powercode-go/drivers/npm13xx"
	"powercode-go/x/linearrange"
)

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"
	NotReady      Code = "not_ready"
	Transport     Code = "transport"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver errors to a Code.
// Anything the charger driver does not classify itself came from the register
// transport, so that is the fallback here (not Error).
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, npm13xx.ErrNotSupported):
		return Unsupported
	case errors.Is(err, npm13xx.ErrNotReady):
		return NotReady
	case errors.Is(err, linearrange.ErrNotRepresentable):
		return InvalidParams
	}
	return Transport
}

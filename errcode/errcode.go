package errcode

// Code is a stable status identifier returned by the peripheral drivers.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	InvalidPin    Code = "invalid_pin"
	Timeout       Code = "timeout"
	Unsupported   Code = "unsupported"
	Busy          Code = "busy" // declared by the UART status set; nothing returns it yet

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
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.Timeout) match a wrapped code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap attaches an operation name to a code. A nil code yields nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: Of(err), Op: op, Err: err}
}

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

// Text returns the operator-facing description used by the bring-up
// error reporter.
func Text(c Code) string {
	switch c {
	case InvalidParams:
		return "Invalid parameter"
	case InvalidPin:
		return "Invalid pin"
	case Timeout:
		return "Operation timeout"
	case Unsupported:
		return "Operation not supported"
	case Busy:
		return "Device busy"
	case Error:
		return "Hardware error"
	case OK:
		return "OK"
	default:
		return "Unknown error"
	}
}

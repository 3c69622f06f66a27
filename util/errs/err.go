package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

const (
	ErrCodeGeneric           string = "XXXX"
	ErrCodeTypeMismatch      string = "TYPE_MISMATCH"
	ErrCodeFormatMismatch    string = "FORMAT_MISMATCH"
	ErrCodeMalformedTimezone string = "MALFORMED_TIMEZONE"
	ErrCodeMissingField      string = "MISSING_FIELD"
)

var (
	ErrTypeMismatch      *Err = NewErrfCode(ErrCodeTypeMismatch, "Type Mismatch")
	ErrFormatMismatch    *Err = NewErrfCode(ErrCodeFormatMismatch, "Format Mismatch")
	ErrMalformedTimezone *Err = NewErrfCode(ErrCodeMalformedTimezone, "Malformed Timezone")
	ErrMissingField      *Err = NewErrfCode(ErrCodeMissingField, "Missing Field")
)

// Coded error.
//
// The package level sentinels are never returned directly, use [Err.WithInput] to derive
// a new error that carries the offending input, and [errors.Is] to match it by code:
//
//	err := ErrFormatMismatch.WithInput(s, "unable to parse date string")
//	errors.Is(err, ErrFormatMismatch) // true
type Err struct {
	code   string // error code.
	msg    string // generic message of the error kind.
	detail string // detailed message about this occurrence.
	input  string // the offending input, if any.
	hasIn  bool
	stack  string
	err    error
}

func (e *Err) Detail() string {
	return e.detail
}

func (e *Err) Msg() string {
	return e.msg
}

func (e *Err) Code() string {
	return e.code
}

// The offending input that caused the error.
func (e *Err) Input() (string, bool) {
	return e.input, e.hasIn
}

func (e *Err) StackTrace() string {
	return e.stack
}

// Create new *Err to wrap the cause error
//
// if cause is nil, nil is returned.
func (e *Err) Wrap(cause error) error {
	if cause == nil {
		return nil
	}
	n := e.copyNew()
	n.err = cause
	n.withStack()
	return n
}

// Create new *Err to wrap the cause error
//
// if cause is nil, nil is returned.
func (e *Err) Wrapf(cause error, detail string, args ...any) error {
	if cause == nil {
		return nil
	}
	n := e.copyNew()
	n.err = cause
	n.withStack()
	n.detail = sprintf(detail, args...)
	return n
}

func (e *Err) copyNew() *Err {
	n := new(Err)
	*n = *e
	return n
}

func (e *Err) Error() string {
	tok := []string{}
	if e.msg != "" {
		tok = append(tok, e.msg)
	}
	if e.detail != "" {
		tok = append(tok, e.detail)
	}
	if e.hasIn {
		tok = append(tok, fmt.Sprintf("input: %q", e.input))
	}
	if uw := e.Unwrap(); uw != nil {
		tok = append(tok, uw.Error())
	}
	return strings.Join(tok, ", ")
}

// Implements *Err Is check.
//
// Returns true, if both are *Err and the code matches.
//
// WithInput and WithDetail always create new error, so the sentinels can be reused:
//
//	var e1 = ErrFormatMismatch.WithInput(...)
//	var e2 = ErrFormatMismatch.WithDetail(...)
//
//	errors.Is(e1, ErrFormatMismatch)
//	errors.Is(e2, ErrFormatMismatch)
func (e *Err) Is(target error) bool {
	if te, ok := target.(*Err); ok && e.code != "" && e.code == te.code {
		return true
	}
	return false
}

func (e *Err) WithDetail(detail string, args ...any) *Err {
	n := e.copyNew()
	n.withStack()
	n.detail = sprintf(detail, args...)
	return n
}

// Create new *Err carrying the offending input.
func (e *Err) WithInput(input string, detail string, args ...any) *Err {
	n := e.WithDetail(detail, args...)
	n.input = input
	n.hasIn = true
	return n
}

func (e *Err) withStack() *Err {
	e.stack = stack(4)
	return e
}

func (e *Err) Unwrap() error {
	return e.err
}

// Create new *Err with message.
func NewErrf(msg string, args ...any) *Err {
	me := &Err{msg: sprintf(msg, args...)}
	me.withStack()
	return me
}

// Create new *Err with message and error code.
func NewErrfCode(code string, msg string, args ...any) *Err {
	me := &Err{msg: sprintf(msg, args...), code: code}
	me.withStack()
	return me
}

// Wrap an error to create new *Err with stacktrace.
//
// If err is nil, nil is returned.
//
// If err is *Err, err is returned directly.
func WrapErr(err error) error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*Err); ok {
		return me
	}
	me := &Err{err: err}
	me.withStack()
	return me
}

// Wrap an error to create new *Err with message.
//
// If the wrapped err is nil, nil is returned.
func WrapErrf(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	me := &Err{msg: sprintf(msg, args...), err: err}
	me.withStack()
	return me
}

// Extract the offending input from err chain.
func InputOf(err error) (string, bool) {
	var e *Err
	if errors.As(err, &e) {
		return e.Input()
	}
	return "", false
}

func UnwrapErrStack(err error) (string, bool) {
	var stack string
	var ue error = err
	for {
		if me, ok := ue.(*Err); ok && me != nil {
			stack = me.stack
		}
		u := errors.Unwrap(ue)
		if u == nil {
			break
		}
		ue = u
	}
	return stack, stack != ""
}

func ErrorStackTrace(err error) string {
	if err == nil {
		return "nil"
	}
	stackTrace, withStack := UnwrapErrStack(err)
	m := err.Error()
	if withStack {
		m += stackTrace
	}
	return m
}

func sprintf(pat string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(pat, args...)
	}
	return pat
}

var stackPool = sync.Pool{
	New: func() any {
		var v []uintptr = make([]uintptr, 50)
		return &v
	},
}

func stack(n int) string {
	stack := stackPool.Get().(*[]uintptr)
	defer func() {
		clear(*stack)
		stackPool.Put(stack)
	}()

	length := runtime.Callers(n, *stack)
	frames := runtime.CallersFrames((*stack)[:length])
	b := strings.Builder{}

	for {
		f, next := frames.Next()
		b.WriteString(fmt.Sprintf("\n\t%v\n\t\t%v:%v", f.Function, f.File, f.Line))
		if !next {
			break
		}
	}
	return b.String()
}

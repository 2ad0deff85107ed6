// Package errors gives loop failures a stable code, ordered context and a
// capture site, while staying compatible with the standard errors package.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCode classifies a failure for exit reporting and tests.
type ErrorCode string

const (
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeTerminalEnter ErrorCode = "TERMINAL_ENTER"
	ErrCodeTerminalExit  ErrorCode = "TERMINAL_EXIT"
	ErrCodeRender        ErrorCode = "RENDER"

	// A send on a queue whose receiver is gone.
	ErrCodeChannelClosed ErrorCode = "CHANNEL_CLOSED"
	// A background task returned while the loop still needed it.
	ErrCodeTaskExited ErrorCode = "TASK_EXITED"

	ErrCodeInternal     ErrorCode = "INTERNAL"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Error is a coded failure. Build one with New, Newf or Wrap and decorate
// it with WithContext and WithRemediation.
type Error struct {
	Code        ErrorCode
	Message     string
	Underlying  error
	Fields      []Field
	Stack       []Frame
	Remediation []string
}

// Field is one piece of context, kept in the order it was attached.
type Field struct {
	Key   string
	Value any
}

// Frame is one caller captured when the error was built.
type Frame struct {
	Function string
	File     string
	Line     int
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Stack: callers()}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Stack: callers()}
}

// Wrap attaches code and message to err. Wrap(nil, ...) is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Underlying: err, Stack: callers()}
}

// WithContext records key; setting the same key again replaces its value
// in place.
func (e *Error) WithContext(key string, value any) *Error {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			e.Fields[i].Value = value
			return e
		}
	}
	e.Fields = append(e.Fields, Field{Key: key, Value: value})
	return e
}

// Lookup returns the context value stored under key.
func (e *Error) Lookup(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// WithRemediation appends steps the user can take to fix the problem.
func (e *Error) WithRemediation(tips ...string) *Error {
	e.Remediation = append(e.Remediation, tips...)
	return e
}

// Error renders "[CODE] message {k: v, ...}: underlying".
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Code, e.Message)

	if len(e.Fields) > 0 {
		sb.WriteString(" {")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", f.Key, f.Value)
		}
		sb.WriteByte('}')
	}

	if e.Underlying != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Underlying.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// StackTrace formats the capture site, innermost call first.
func (e *Error) StackTrace() string {
	var sb strings.Builder
	sb.WriteString("Stack trace:\n")
	for i, f := range e.Stack {
		fmt.Fprintf(&sb, "  %d. %s\n     %s:%d\n", i+1, f.Function, f.File, f.Line)
	}
	return sb.String()
}

const maxDepth = 32

// callers skips itself and the constructor that called it.
func callers() []Frame {
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]Frame, 0, n)
	for {
		f, more := frames.Next()
		stack = append(stack, Frame{Function: f.Function, File: f.File, Line: f.Line})
		if !more {
			break
		}
	}
	return stack
}

// As finds the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if !stderrors.As(err, &target) || target == nil {
		return nil, false
	}
	return target, true
}

// IsCode reports whether any *Error in the chain carries code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		e, ok := As(err)
		if !ok {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Underlying
	}
	return false
}

// GetCode returns the outermost code. Plain errors report INTERNAL.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Code
	}
	return ErrCodeInternal
}

// Remediation collects the tips attached anywhere in err's chain, outermost
// first.
func Remediation(err error) []string {
	var tips []string
	for err != nil {
		e, ok := As(err)
		if !ok {
			break
		}
		tips = append(tips, e.Remediation...)
		err = e.Underlying
	}
	return tips
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Package errors provides const-declarable sentinel errors and thin wrappers over the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Separator divides a sentinel's message from the message of the error it wraps.
const Separator = " -- "

// Error is a string based error type allowing packages to declare const sentinel errors.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this sentinel or an error produced by wrapping it.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(s) || strings.HasPrefix(msg, string(s)+Separator)
}

// As sets target to this sentinel when target is a settable *Error.
func (s Error) As(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return false
	}
	v = v.Elem()
	if v.Type() != reflect.TypeOf(Error("")) || !v.CanSet() {
		return false
	}
	v.SetString(string(s))
	return true
}

// Wrap attaches cause to the sentinel. The result matches the sentinel with Is and unwraps to cause.
func (s Error) Wrap(cause error) error {
	return wrappedError{msg: string(s), cause: cause}
}

// Wrapf is Wrap with a formatted cause.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{msg: string(s), cause: fmt.Errorf(format, args...)}
}

type wrappedError struct {
	msg   string
	cause error
}

func (w wrappedError) Error() string {
	if w.cause == nil {
		return w.msg
	}
	return w.msg + Separator + w.cause.Error()
}

func (w wrappedError) Is(target error) bool {
	if sentinel, ok := target.(Error); ok {
		return string(sentinel) == w.msg
	}
	return false
}

func (w wrappedError) As(target any) bool {
	return Error(w.msg).As(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is errors.New.
func New(message string) error {
	return errors.New(message)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// UnwrapErrors returns the errors joined into err, or err itself when it is not a joined error.
func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(interface{ Unwrap() []error }); ok {
		return je.Unwrap()
	}
	return []error{err}
}

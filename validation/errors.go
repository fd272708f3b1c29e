package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity represents how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityHint    Severity = "hint"
)

// Rank orders severities from most to least serious.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityHint:
		return 2
	default:
		return 3
	}
}

func (s Severity) String() string {
	return string(s)
}

// Error represents a diagnostic raised while parsing, resolving or linting a document.
type Error struct {
	// UnderlyingError is the error describing what is wrong.
	UnderlyingError error
	// Severity of the diagnostic.
	Severity Severity
	// Rule is the identifier of the rule that produced the diagnostic.
	Rule string
	// Location is the JSON pointer to the offending element, e.g. "#/paths/~1pets/get".
	Location string
	// Line and Column of the offending node in the source, 0 when unknown.
	Line   int
	Column int
	// DocumentLocation identifies the document the diagnostic belongs to when several are processed together.
	DocumentLocation string
}

var _ error = (*Error)(nil)

// NewError creates a diagnostic without source position information.
func NewError(severity Severity, rule string, err error, location string) *Error {
	return &Error{
		UnderlyingError: err,
		Severity:        severity,
		Rule:            rule,
		Location:        location,
	}
}

// NewNodeError creates a diagnostic positioned at the provided node.
func NewNodeError(severity Severity, rule string, err error, location string, node *yaml.Node) *Error {
	e := NewError(severity, rule, err, location)
	if node != nil {
		e.Line = node.Line
		e.Column = node.Column
	}
	return e
}

func (e *Error) Error() string {
	msg := ""
	if e.UnderlyingError != nil {
		msg = e.UnderlyingError.Error()
	}

	if e.Location != "" {
		msg = e.Location + ": " + msg
	}

	return fmt.Sprintf("[%d:%d] %s %s %s", e.Line, e.Column, e.Severity, e.Rule, msg)
}

func (e *Error) Unwrap() error {
	return e.UnderlyingError
}

func (e *Error) GetLineNumber() int {
	if e == nil {
		return 0
	}
	return e.Line
}

func (e *Error) GetColumnNumber() int {
	if e == nil {
		return 0
	}
	return e.Column
}

// GetSeverity returns the severity of err if it is a diagnostic, SeverityError otherwise.
func GetSeverity(err error) Severity {
	var vErr *Error
	if As(err, &vErr) {
		return vErr.Severity
	}
	return SeverityError
}

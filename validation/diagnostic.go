package validation

import (
	"errors"
)

// As is errors.As, re-exported so callers checking diagnostics need not import both packages.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Diagnostic collects the errors and warnings produced while reading a document.
type Diagnostic struct {
	// SpecificationVersion is the version declared by the document, e.g. "2.0".
	SpecificationVersion string
	// Errors holds every diagnostic in the order it was raised.
	Errors []error
}

// Add records err.
func (d *Diagnostic) Add(err error) {
	if d == nil || err == nil {
		return
	}
	d.Errors = append(d.Errors, err)
}

// AddAll records every error in errs.
func (d *Diagnostic) AddAll(errs []error) {
	for _, err := range errs {
		d.Add(err)
	}
}

// Filter returns the diagnostics of the given severity.
func (d *Diagnostic) Filter(severity Severity) []error {
	if d == nil {
		return nil
	}

	var out []error
	for _, err := range d.Errors {
		if GetSeverity(err) == severity {
			out = append(out, err)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func (d *Diagnostic) HasErrors() bool {
	return len(d.Filter(SeverityError)) > 0
}

// Sorted returns a sorted copy of the collected diagnostics.
func (d *Diagnostic) Sorted() []error {
	if d == nil {
		return nil
	}
	out := make([]error, len(d.Errors))
	copy(out, d.Errors)
	SortValidationErrors(out)
	return out
}

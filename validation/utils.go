package validation

import (
	"cmp"
	"errors"
	"slices"
)

// SortValidationErrors sorts the provided diagnostics by source position, lowest first.
// Errors that are not diagnostics keep their relative order after the diagnostics.
func SortValidationErrors(allErrors []error) {
	if len(allErrors) < 2 {
		return
	}

	diagnostics := make([]*Error, 0, len(allErrors))
	var others []error
	for _, err := range allErrors {
		var vErr *Error
		if errors.As(err, &vErr) {
			diagnostics = append(diagnostics, vErr)
		} else {
			others = append(others, err)
		}
	}

	slices.SortStableFunc(diagnostics, compareValidationErrors)

	for i, vErr := range diagnostics {
		allErrors[i] = vErr
	}
	copy(allErrors[len(diagnostics):], others)
}

// compareValidationErrors orders by position, then severity (most severe first), then by the
// remaining fields so the order is total.
func compareValidationErrors(a, b *Error) int {
	return cmp.Or(
		cmp.Compare(a.GetLineNumber(), b.GetLineNumber()),
		cmp.Compare(a.GetColumnNumber(), b.GetColumnNumber()),
		cmp.Compare(a.Severity.Rank(), b.Severity.Rank()),
		cmp.Compare(a.Rule, b.Rule),
		cmp.Compare(a.Location, b.Location),
		cmp.Compare(a.Error(), b.Error()),
		cmp.Compare(a.DocumentLocation, b.DocumentLocation),
	)
}

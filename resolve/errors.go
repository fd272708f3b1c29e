package resolve

import (
	"fmt"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/workspace"
)

const (
	// ErrLocalReferenceNotFound is the failure of a reference to a component its document does not declare.
	ErrLocalReferenceNotFound = errors.Error("local reference not found")
	// ErrCircularReference is the failure of a reference whose chain of aliases loops.
	ErrCircularReference = errors.Error("circular reference")
	// ErrTypeMismatch is the failure of a reference whose target cannot stand where the reference is used.
	ErrTypeMismatch = errors.Error("reference type mismatch")

	errNoWorkspace = errors.Error("external reference without workspace")
)

// Failure describes a reference that could not be resolved. It unwraps to the reason, one of
// ErrLocalReferenceNotFound, ErrCircularReference, ErrTypeMismatch,
// workspace.ErrExternalDocumentNotRegistered or workspace.ErrExternalReferenceNotFound.
type Failure struct {
	Reference *model.Reference
	// Location is where the reference is used, as a JSON pointer into the walked model.
	Location string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("cannot resolve %s: %s", f.Reference, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// rule returns the validation rule a failure is reported under.
func (f *Failure) rule() string {
	switch {
	case errors.Is(f.Err, ErrCircularReference):
		return validation.RuleCircularReference
	case errors.Is(f.Err, workspace.ErrExternalDocumentNotRegistered):
		return validation.RuleDocumentNotRegistered
	default:
		return validation.RuleReferenceNotFound
	}
}

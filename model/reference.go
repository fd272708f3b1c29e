package model

import (
	"fmt"
	"strings"
)

// ReferenceType identifies a component collection. The values match the collection names under #/components.
type ReferenceType string

const (
	ReferenceTypeSchema         ReferenceType = "schemas"
	ReferenceTypeResponse       ReferenceType = "responses"
	ReferenceTypeParameter      ReferenceType = "parameters"
	ReferenceTypeRequestBody    ReferenceType = "requestBodies"
	ReferenceTypeHeader         ReferenceType = "headers"
	ReferenceTypeSecurityScheme ReferenceType = "securitySchemes"
)

// ReferenceState tracks a reference through resolution.
type ReferenceState int

const (
	ReferenceStateUnresolved ReferenceState = iota
	ReferenceStateResolved
	ReferenceStateFailed
)

func (s ReferenceState) String() string {
	switch s {
	case ReferenceStateUnresolved:
		return "unresolved"
	case ReferenceStateResolved:
		return "resolved"
	case ReferenceStateFailed:
		return "failed"
	default:
		return fmt.Sprintf("ReferenceState(%d)", int(s))
	}
}

// Reference names a reusable component, optionally in another document.
type Reference struct {
	Type ReferenceType
	ID   string
	// ExternalResource is the location of the document holding the component, empty for local references.
	ExternalResource string

	State ReferenceState
	// Failure holds the reason resolution failed when State is ReferenceStateFailed.
	Failure error
}

// IsExternal reports whether the reference points into another document.
func (r *Reference) IsExternal() bool {
	return r != nil && r.ExternalResource != ""
}

// Pointer returns the JSON pointer of the component within its document, e.g. "#/components/schemas/Pet".
func (r *Reference) Pointer() string {
	if r == nil {
		return ""
	}
	return "#/components/" + string(r.Type) + "/" + escapePointerToken(r.ID)
}

// String returns the reference in $ref form, prefixed by the external resource when there is one.
func (r *Reference) String() string {
	if r == nil {
		return ""
	}
	return r.ExternalResource + r.Pointer()
}

func escapePointerToken(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

// Referencing is embedded by objects that can stand in for a component.
//
// A placeholder is an object with UnresolvedReference set and only Reference
// populated. Declared components carry their own identity reference with
// UnresolvedReference unset.
type Referencing struct {
	Reference           *Reference
	UnresolvedReference bool
}

func (r *Referencing) GetReference() *Reference {
	return r.Reference
}

func (r *Referencing) SetReference(ref *Reference) {
	r.Reference = ref
}

func (r *Referencing) IsUnresolved() bool {
	return r.UnresolvedReference
}

func (r *Referencing) SetUnresolved(unresolved bool) {
	r.UnresolvedReference = unresolved
}

// Referenceable is implemented by every object that can live in a component collection.
type Referenceable interface {
	GetReference() *Reference
	SetReference(ref *Reference)
	IsUnresolved() bool
	SetUnresolved(unresolved bool)
}

// NewPlaceholder returns an unresolved placeholder of type T for ref.
func NewPlaceholder[T any, P interface {
	*T
	Referenceable
}](ref *Reference) P {
	p := P(new(T))
	p.SetReference(ref)
	p.SetUnresolved(true)
	return p
}

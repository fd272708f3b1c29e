package swagger

import (
	"slices"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/speakeasy-api/oasgraph/walk"
)

// RequestBodyReferenceFixer rewrites operation parameters that reference a body parameter.
//
// Swagger 2.0 declares reusable bodies as parameters, so an operation using one holds a parameter
// placeholder. When the placeholder names a declared request body it is removed from the
// operation's parameters and the operation gets a request body placeholder with the same ID.
type RequestBodyReferenceFixer struct {
	walk.VisitorBase

	requestBodies *sequencedmap.Map[string, *model.RequestBody]
}

var _ walk.Visitor = (*RequestBodyReferenceFixer)(nil)

// NewRequestBodyReferenceFixer creates a fixer for the given request body components.
func NewRequestBodyReferenceFixer(requestBodies *sequencedmap.Map[string, *model.RequestBody]) *RequestBodyReferenceFixer {
	return &RequestBodyReferenceFixer{requestBodies: requestBodies}
}

func (f *RequestBodyReferenceFixer) VisitOperation(op *model.Operation) {
	i := slices.IndexFunc(op.Parameters, f.isBodyReference)
	if i < 0 {
		return
	}

	ref := op.Parameters[i].GetReference()
	op.Parameters = slices.Delete(op.Parameters, i, i+1)
	op.RequestBody = model.NewPlaceholder[model.RequestBody](&model.Reference{
		Type: model.ReferenceTypeRequestBody,
		ID:   ref.ID,
	})
}

func (f *RequestBodyReferenceFixer) isBodyReference(p *model.Parameter) bool {
	if p == nil || !p.IsUnresolved() {
		return false
	}
	ref := p.GetReference()
	return ref != nil && !ref.IsExternal() && f.requestBodies.Has(ref.ID)
}

// FixRequestBodyReferences runs a RequestBodyReferenceFixer over doc when it declares request bodies.
func FixRequestBodyReferences(doc *model.Document) {
	if doc == nil || doc.Components == nil || doc.Components.RequestBodies.Len() == 0 {
		return
	}
	walk.Walk(doc, NewRequestBodyReferenceFixer(doc.Components.RequestBodies))
}

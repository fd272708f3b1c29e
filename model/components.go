package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

// Components holds the reusable objects declared by a document, one collection per ReferenceType.
type Components struct {
	Source
	Extended

	Schemas         *sequencedmap.Map[string, *Schema]
	Responses       *sequencedmap.Map[string, *Response]
	Parameters      *sequencedmap.Map[string, *Parameter]
	RequestBodies   *sequencedmap.Map[string, *RequestBody]
	Headers         *sequencedmap.Map[string, *Header]
	SecuritySchemes *sequencedmap.Map[string, *SecurityScheme]
}

// Get looks up the component of the given kind. A nil Components has no entries.
func (c *Components) Get(t ReferenceType, id string) (Referenceable, bool) {
	if c == nil {
		return nil, false
	}

	switch t {
	case ReferenceTypeSchema:
		return get(c.Schemas, id)
	case ReferenceTypeResponse:
		return get(c.Responses, id)
	case ReferenceTypeParameter:
		return get(c.Parameters, id)
	case ReferenceTypeRequestBody:
		return get(c.RequestBodies, id)
	case ReferenceTypeHeader:
		return get(c.Headers, id)
	case ReferenceTypeSecurityScheme:
		return get(c.SecuritySchemes, id)
	default:
		return nil, false
	}
}

// Has reports whether a component of the given kind is declared.
func (c *Components) Has(t ReferenceType, id string) bool {
	_, ok := c.Get(t, id)
	return ok
}

func get[T any, P interface {
	*T
	Referenceable
}](m *sequencedmap.Map[string, P], id string) (Referenceable, bool) {
	v, ok := m.Get(id)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

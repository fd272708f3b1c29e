package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

// CreatePathItem adds (or replaces) the path item for path and lets configure populate it.
func (d *Document) CreatePathItem(path string, configure func(*PathItem)) *PathItem {
	if d.Paths == nil {
		d.Paths = NewPaths()
	}
	item := &PathItem{}
	if configure != nil {
		configure(item)
	}
	d.Paths.Set(path, item)
	return item
}

// CreateOperation adds (or replaces) the operation for method.
func (p *PathItem) CreateOperation(method OperationType, configure func(*Operation)) *Operation {
	if p.Operations == nil {
		p.Operations = sequencedmap.New[OperationType, *Operation]()
	}
	op := &Operation{}
	if configure != nil {
		configure(op)
	}
	p.Operations.Set(method, op)
	return op
}

// SetOperation binds op to method, replacing any operation already bound to it.
func (p *PathItem) SetOperation(method OperationType, op *Operation) {
	if p.Operations == nil {
		p.Operations = sequencedmap.New[OperationType, *Operation]()
	}
	p.Operations.Set(method, op)
}

// CreateResponse adds (or replaces) the response for status.
func (o *Operation) CreateResponse(status string, configure func(*Response)) *Response {
	if o.Responses == nil {
		o.Responses = NewResponses()
	}
	resp := &Response{}
	if configure != nil {
		configure(resp)
	}
	o.Responses.Set(status, resp)
	return resp
}

// CreateContent adds (or replaces) the media type entry for mediaType.
func (r *Response) CreateContent(mediaType string, configure func(*MediaType)) *MediaType {
	if r.Content == nil {
		r.Content = sequencedmap.New[string, *MediaType]()
	}
	mt := &MediaType{}
	if configure != nil {
		configure(mt)
	}
	r.Content.Set(mediaType, mt)
	return mt
}

// AddSchema declares a schema component and stamps it with its identity reference.
func (c *Components) AddSchema(id string, schema *Schema) {
	if c.Schemas == nil {
		c.Schemas = sequencedmap.New[string, *Schema]()
	}
	stampIdentity(schema, ReferenceTypeSchema, id)
	c.Schemas.Set(id, schema)
}

// AddParameter declares a parameter component.
func (c *Components) AddParameter(id string, param *Parameter) {
	if c.Parameters == nil {
		c.Parameters = sequencedmap.New[string, *Parameter]()
	}
	stampIdentity(param, ReferenceTypeParameter, id)
	c.Parameters.Set(id, param)
}

// AddRequestBody declares a request body component.
func (c *Components) AddRequestBody(id string, body *RequestBody) {
	if c.RequestBodies == nil {
		c.RequestBodies = sequencedmap.New[string, *RequestBody]()
	}
	stampIdentity(body, ReferenceTypeRequestBody, id)
	c.RequestBodies.Set(id, body)
}

// StampIdentity gives a declared component its identity reference unless it already carries one.
func StampIdentity(r Referenceable, t ReferenceType, id string) {
	stampIdentity(r, t, id)
}

func stampIdentity(r Referenceable, t ReferenceType, id string) {
	if r == nil || r.GetReference() != nil {
		return
	}
	r.SetReference(&Reference{Type: t, ID: id, State: ReferenceStateResolved})
}

package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

// OperationType is the HTTP method an operation is bound to.
type OperationType string

const (
	OperationTypeGet     OperationType = "get"
	OperationTypePut     OperationType = "put"
	OperationTypePost    OperationType = "post"
	OperationTypeDelete  OperationType = "delete"
	OperationTypeOptions OperationType = "options"
	OperationTypeHead    OperationType = "head"
	OperationTypePatch   OperationType = "patch"
	OperationTypeTrace   OperationType = "trace"
)

// Paths maps path templates to their PathItem, in declaration order.
type Paths struct {
	*sequencedmap.Map[string, *PathItem]
	Source
	Extended
}

// NewPaths creates an empty Paths.
func NewPaths() *Paths {
	return &Paths{Map: sequencedmap.New[string, *PathItem]()}
}

type PathItem struct {
	Source
	Extended

	Summary     string
	Description string
	Operations  *sequencedmap.Map[OperationType, *Operation]
	Servers     []*Server
	Parameters  []*Parameter
}

// GetOperation returns the operation bound to method, or nil.
func (p *PathItem) GetOperation(method OperationType) *Operation {
	if p == nil {
		return nil
	}
	return p.Operations.GetOrZero(method)
}

type Operation struct {
	Source
	Extended

	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *ExternalDocs
	OperationID  string
	Parameters   []*Parameter
	RequestBody  *RequestBody
	Responses    *Responses
	Deprecated   bool
	Security     []*SecurityRequirement
	Servers      []*Server
}

// Responses maps status codes (and "default") to their Response, in declaration order.
type Responses struct {
	*sequencedmap.Map[string, *Response]
	Source
	Extended
}

// NewResponses creates an empty Responses.
func NewResponses() *Responses {
	return &Responses{Map: sequencedmap.New[string, *Response]()}
}

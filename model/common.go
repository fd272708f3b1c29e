// Package model contains the typed API description produced by the readers.
//
// The model is version neutral: Swagger 2.0 documents are mapped onto it by the
// swagger package. Objects that can be reused through a component collection
// embed Referencing so a reference placeholder and the object it points at share
// one Go type.
package model

import (
	"github.com/speakeasy-api/oasgraph/extensions"
	"gopkg.in/yaml.v3"
)

// Extended provides the extensions bucket shared by every model object.
type Extended struct {
	Extensions *extensions.Extensions
}

// AddExtension implements extensions.Extensible.
func (e *Extended) AddExtension(key string, value extensions.Extension) {
	if e.Extensions == nil {
		e.Extensions = extensions.New()
	}
	e.Extensions.Add(key, value)
}

var _ extensions.Extensible = (*Extended)(nil)

// Source records the input node a model object was read from.
type Source struct {
	node *yaml.Node
}

// GetRootNode returns the node the object was read from, nil for objects built in code or synthesized.
func (s *Source) GetRootNode() *yaml.Node {
	if s == nil {
		return nil
	}
	return s.node
}

// SetRootNode records the node the object was read from.
func (s *Source) SetRootNode(node *yaml.Node) {
	s.node = node
}

// Located is implemented by model objects that remember their source node.
type Located interface {
	GetRootNode() *yaml.Node
	SetRootNode(node *yaml.Node)
}

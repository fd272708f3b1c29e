// Package parsenode wraps raw yaml.v3 nodes in typed parse nodes and provides the
// builders field handlers use to turn them into model objects.
package parsenode

import (
	"github.com/speakeasy-api/oasgraph/yml"
	"gopkg.in/yaml.v3"
)

// Kind is the variant of a parse node.
type Kind string

const (
	KindMap   Kind = "map"
	KindList  Kind = "list"
	KindValue Kind = "value"
)

// Node is a parse node. The concrete type is one of *MapNode, *ListNode or *ValueNode and never changes.
type Node interface {
	Kind() Kind
	Context() *Context
	// YAMLNode returns the underlying node with aliases and document wrappers removed. It is nil for empty values.
	YAMLNode() *yaml.Node

	// CheckMapNode returns the node as a mapping, failing with a StructuralError naming what was expected.
	CheckMapNode(name string) (*MapNode, error)
	// GetScalarValue returns the node's scalar value, failing with a StructuralError for maps and lists.
	GetScalarValue() (string, error)
	// CreateAny returns the raw node for values with no fixed schema such as examples and extensions.
	CreateAny() *yaml.Node
}

// Create wraps node in the parse node variant matching its shape.
// Anything that is not a mapping or a sequence becomes a ValueNode, with no value if it is not a scalar.
func Create(ctx *Context, node *yaml.Node) Node {
	resolved := yml.Unwrap(node)
	if resolved == nil {
		return &ValueNode{base: base{ctx: ctx}}
	}

	switch resolved.Kind {
	case yaml.MappingNode:
		return newMapNode(ctx, resolved)
	case yaml.SequenceNode:
		return &ListNode{base: base{ctx: ctx, node: resolved}}
	case yaml.ScalarNode:
		return &ValueNode{base: base{ctx: ctx, node: resolved}, hasValue: true}
	default:
		return &ValueNode{base: base{ctx: ctx, node: resolved}}
	}
}

type base struct {
	ctx  *Context
	node *yaml.Node
}

func (b *base) Context() *Context {
	return b.ctx
}

func (b *base) YAMLNode() *yaml.Node {
	return b.node
}

func (b *base) CreateAny() *yaml.Node {
	return b.node
}

func (b *base) structuralError(name string, expected, actual Kind) *StructuralError {
	err := &StructuralError{
		Expected: expected,
		Actual:   actual,
		Name:     name,
	}
	if b.ctx != nil {
		err.Location = b.ctx.Location()
	}
	if b.node != nil {
		err.Line = b.node.Line
		err.Column = b.node.Column
	}
	return err
}

// ListNode is a sequence.
type ListNode struct {
	base
}

var _ Node = (*ListNode)(nil)

func (l *ListNode) Kind() Kind {
	return KindList
}

func (l *ListNode) CheckMapNode(name string) (*MapNode, error) {
	return nil, l.structuralError(name, KindMap, KindList)
}

func (l *ListNode) GetScalarValue() (string, error) {
	return "", l.structuralError("value", KindValue, KindList)
}

func (l *ListNode) Len() int {
	return len(l.node.Content)
}

// Items returns the wrapped elements in order.
func (l *ListNode) Items() []Node {
	items := make([]Node, 0, len(l.node.Content))
	for _, item := range l.node.Content {
		items = append(items, Create(l.ctx, item))
	}
	return items
}

// ValueNode is a scalar, or a node of unsupported shape that carries no value.
type ValueNode struct {
	base
	hasValue bool
}

var _ Node = (*ValueNode)(nil)

func (v *ValueNode) Kind() Kind {
	return KindValue
}

func (v *ValueNode) CheckMapNode(name string) (*MapNode, error) {
	return nil, v.structuralError(name, KindMap, KindValue)
}

// GetScalarValue returns the scalar text, or "" when the node has no value.
func (v *ValueNode) GetScalarValue() (string, error) {
	if !v.hasValue {
		return "", nil
	}
	return v.node.Value, nil
}

// HasValue reports whether the node is a scalar.
func (v *ValueNode) HasValue() bool {
	return v.hasValue
}

// IsNull reports whether the node is absent or an explicit null.
func (v *ValueNode) IsNull() bool {
	return !v.hasValue || v.node.Tag == "!!null"
}

// Decode decodes the scalar into out using yaml.v3 rules, so "true" decodes into a bool.
func (v *ValueNode) Decode(out any) error {
	if !v.hasValue {
		return nil
	}
	return v.node.Decode(out)
}

package parsenode

import (
	"iter"

	"github.com/speakeasy-api/oasgraph/yml"
	"gopkg.in/yaml.v3"
)

// RefKey is the reserved key marking a mapping as a reference to another location.
const RefKey = "$ref"

// MapNode is a mapping with its children in declaration order. Merge keys are expanded.
type MapNode struct {
	base
	pairs [][2]*yaml.Node
}

var _ Node = (*MapNode)(nil)

func newMapNode(ctx *Context, node *yaml.Node) *MapNode {
	return &MapNode{
		base:  base{ctx: ctx, node: node},
		pairs: yml.MapPairs(node),
	}
}

func (m *MapNode) Kind() Kind {
	return KindMap
}

func (m *MapNode) CheckMapNode(_ string) (*MapNode, error) {
	return m, nil
}

func (m *MapNode) GetScalarValue() (string, error) {
	return "", m.structuralError("value", KindValue, KindMap)
}

func (m *MapNode) Len() int {
	return len(m.pairs)
}

// Property is one key/value child of a MapNode.
type Property struct {
	Name    string
	KeyNode *yaml.Node
	Value   Node
}

// Properties iterates the children in declaration order.
func (m *MapNode) Properties() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		for _, pair := range m.pairs {
			key := yml.ResolveAlias(pair[0])
			if key == nil {
				key = pair[0]
			}
			if !yield(Property{Name: key.Value, KeyNode: pair[0], Value: Create(m.ctx, pair[1])}) {
				return
			}
		}
	}
}

// Get returns the child stored under key.
func (m *MapNode) Get(key string) (Node, bool) {
	for p := range m.Properties() {
		if p.Name == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetReferencePointer returns the value of the $ref key when the mapping is a reference.
func (m *MapNode) GetReferencePointer() (string, bool) {
	n, ok := m.Get(RefKey)
	if !ok {
		return "", false
	}
	v, err := n.GetScalarValue()
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// GetScalarValueOf returns the scalar stored under key, "" when absent or not a scalar.
func (m *MapNode) GetScalarValueOf(key string) string {
	n, ok := m.Get(key)
	if !ok {
		return ""
	}
	v, _ := n.GetScalarValue()
	return v
}

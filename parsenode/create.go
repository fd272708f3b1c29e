package parsenode

import (
	"strconv"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/speakeasy-api/oasgraph/validation"
	"gopkg.in/yaml.v3"
)

// CreateList builds one element per item of a sequence. Items must be mappings.
// An element whose builder fails is reported and skipped; elements built as nil are skipped.
func CreateList[T any](n Node, build func(*MapNode) (*T, error)) ([]*T, error) {
	list, ok := n.(*ListNode)
	if !ok {
		return nil, structuralErrorFor(n, "list", KindList)
	}

	ctx := list.Context()
	out := make([]*T, 0, list.Len())
	for i, item := range list.Items() {
		ctx.StartObject(strconv.Itoa(i))
		v, err := buildMapped(item, "list item", build)
		if err = ctx.Report(err, item.YAMLNode()); err != nil {
			ctx.EndObject()
			return nil, err
		}
		ctx.EndObject()

		if v != nil {
			out = append(out, v)
		}
	}

	return out, nil
}

// CreateMap builds a name to value mapping whose values are mappings.
func CreateMap[T any](n Node, build func(*MapNode) (*T, error)) (*sequencedmap.Map[string, *T], error) {
	m, ok := n.(*MapNode)
	if !ok {
		return nil, structuralErrorFor(n, "map", KindMap)
	}

	ctx := m.Context()
	out := sequencedmap.NewWithCapacity[string, *T](m.Len())
	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		v, err := buildMapped(p.Value, p.Name, build)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return nil, err
		}
		ctx.EndObject()

		if v != nil {
			out.Set(p.Name, v)
		}
	}

	return out, nil
}

// CreateMapWithReference builds a component collection. A child that is a reference is recorded as an
// unresolved placeholder instead of being built, and every built component gets its identity reference.
func CreateMapWithReference[T any, P interface {
	*T
	model.Referenceable
}](n Node, refType model.ReferenceType, build func(*MapNode) (P, error)) (*sequencedmap.Map[string, P], error) {
	m, ok := n.(*MapNode)
	if !ok {
		return nil, structuralErrorFor(n, "map", KindMap)
	}

	ctx := m.Context()
	out := sequencedmap.NewWithCapacity[string, P](m.Len())
	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		v, err := CreateReferenceable[T, P](p.Value, p.Name, refType, build)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return nil, err
		}
		ctx.EndObject()

		if v == nil {
			continue
		}
		model.StampIdentity(v, refType, p.Name)
		out.Set(p.Name, v)
	}

	return out, nil
}

// CreateReferenceable builds one referenceable object, or a placeholder when the mapping is a reference.
func CreateReferenceable[T any, P interface {
	*T
	model.Referenceable
}](n Node, name string, refType model.ReferenceType, build func(*MapNode) (P, error)) (P, error) {
	m, err := n.CheckMapNode(name)
	if err != nil {
		return nil, err
	}

	pointer, ok := m.GetReferencePointer()
	if !ok {
		return build(m)
	}

	ctx := m.Context()
	vs := ctx.VersionService()
	if vs == nil {
		return nil, ErrNoVersionService
	}

	ref, err := vs.ConvertToReference(pointer, refType)
	if err != nil {
		return nil, validation.NewNodeError(validation.SeverityError, validation.RuleValidationInvalidReference, err, ctx.Location(), m.YAMLNode())
	}

	p := model.NewPlaceholder[T, P](ref)
	if located, ok := any(p).(model.Located); ok {
		located.SetRootNode(m.YAMLNode())
	}
	return p, nil
}

// CreateSimpleList builds one element per scalar item of a sequence.
func CreateSimpleList[T any](n Node, build func(*ValueNode) (T, error)) ([]T, error) {
	list, ok := n.(*ListNode)
	if !ok {
		return nil, structuralErrorFor(n, "list", KindList)
	}

	ctx := list.Context()
	out := make([]T, 0, list.Len())
	for i, item := range list.Items() {
		ctx.StartObject(strconv.Itoa(i))
		v, err := buildValue(item, build)
		if err != nil {
			if err = ctx.Report(err, item.YAMLNode()); err != nil {
				ctx.EndObject()
				return nil, err
			}
			ctx.EndObject()
			continue
		}
		ctx.EndObject()
		out = append(out, v)
	}

	return out, nil
}

// CreateSimpleMap builds a name to value mapping whose values are scalars.
func CreateSimpleMap[T any](n Node, build func(*ValueNode) (T, error)) (*sequencedmap.Map[string, T], error) {
	m, ok := n.(*MapNode)
	if !ok {
		return nil, structuralErrorFor(n, "map", KindMap)
	}

	ctx := m.Context()
	out := sequencedmap.NewWithCapacity[string, T](m.Len())
	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		v, err := buildValue(p.Value, build)
		if err != nil {
			if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
				ctx.EndObject()
				return nil, err
			}
			ctx.EndObject()
			continue
		}
		ctx.EndObject()
		out.Set(p.Name, v)
	}

	return out, nil
}

// ScalarString is a CreateSimpleList/CreateSimpleMap builder returning the scalar text.
func ScalarString(v *ValueNode) (string, error) {
	return v.GetScalarValue()
}

func buildMapped[T any](n Node, name string, build func(*MapNode) (*T, error)) (*T, error) {
	m, err := n.CheckMapNode(name)
	if err != nil {
		return nil, err
	}
	return build(m)
}

func buildValue[T any](n Node, build func(*ValueNode) (T, error)) (T, error) {
	v, ok := n.(*ValueNode)
	if !ok {
		var zero T
		return zero, structuralErrorFor(n, "value", KindValue)
	}
	return build(v)
}

func structuralErrorFor(n Node, name string, expected Kind) *StructuralError {
	switch v := n.(type) {
	case *MapNode:
		return v.structuralError(name, expected, KindMap)
	case *ListNode:
		return v.structuralError(name, expected, KindList)
	case *ValueNode:
		return v.structuralError(name, expected, KindValue)
	default:
		return &StructuralError{Expected: expected, Name: name}
	}
}

// CreateRawList returns the raw items of a sequence, for values with no fixed schema such as enums.
func CreateRawList(n Node) ([]*yaml.Node, error) {
	list, ok := n.(*ListNode)
	if !ok {
		return nil, structuralErrorFor(n, "list", KindList)
	}

	out := make([]*yaml.Node, 0, list.Len())
	for _, item := range list.Items() {
		out = append(out, item.CreateAny())
	}
	return out, nil
}

// Package fieldmap dispatches the children of a mapping node to declarative field handlers.
//
// A version of the document format is described entirely by its tables: a FixedFieldMap for keys
// known statically and a PatternFieldMap for keys matched by predicate. ParseMap holds no knowledge
// of what any field means.
package fieldmap

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/oasgraph/extensions"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/validation"
)

// FixedFieldMap maps an exact key to the handler that assigns it on the target.
type FixedFieldMap[T any] map[string]func(target T, n parsenode.Node) error

// PatternField handles every key Match accepts.
type PatternField[T any] struct {
	Match  func(key string) bool
	Handle func(target T, key string, n parsenode.Node) error
}

// PatternFieldMap is evaluated in order after a FixedFieldMap miss. The first match wins.
type PatternFieldMap[T any] []PatternField[T]

// HasPrefix returns a predicate matching keys starting with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// ExtensionField is the pattern entry storing x- keys as raw extensions.
func ExtensionField[T extensions.Extensible]() PatternField[T] {
	return PatternField[T]{
		Match: extensions.IsExtension,
		Handle: func(target T, key string, n parsenode.Node) error {
			target.AddExtension(key, n.CreateAny())
			return nil
		},
	}
}

// ErrUnrecognizedField is the cause of unrecognized field warnings.
type ErrUnrecognizedField struct {
	Key string
}

func (e *ErrUnrecognizedField) Error() string {
	return fmt.Sprintf("field %s is not recognized", e.Key)
}

// ParseMap dispatches every child of m in declaration order: an exact match in fixed, else the
// first matching entry of patterns, else the extensions of target for x- keys, else an
// unrecognized field warning. Handler failures are recorded as diagnostics and the next child
// is processed; only a structural error under a context that stops on them is returned.
func ParseMap[T any](m *parsenode.MapNode, target T, fixed FixedFieldMap[T], patterns PatternFieldMap[T]) error {
	if m == nil {
		return nil
	}
	ctx := m.Context()

	if located, ok := any(target).(model.Located); ok && located.GetRootNode() == nil {
		located.SetRootNode(m.YAMLNode())
	}

	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		err := parseField(p, target, fixed, patterns)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return err
		}
		ctx.EndObject()
	}

	return nil
}

func parseField[T any](p parsenode.Property, target T, fixed FixedFieldMap[T], patterns PatternFieldMap[T]) error {
	if handler, ok := fixed[p.Name]; ok {
		return handler(target, p.Value)
	}

	for _, pattern := range patterns {
		if pattern.Match(p.Name) {
			return pattern.Handle(target, p.Name, p.Value)
		}
	}

	if extensions.IsExtension(p.Name) {
		if ext, ok := any(target).(extensions.Extensible); ok {
			ext.AddExtension(p.Name, p.Value.CreateAny())
			return nil
		}
	}

	ctx := p.Value.Context()
	ctx.AddError(validation.SeverityWarning, validation.RuleValidationUnrecognizedField, &ErrUnrecognizedField{Key: p.Name}, p.KeyNode)
	return nil
}

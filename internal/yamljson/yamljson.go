// Package yamljson converts yaml.v3 node trees into JSON-compatible values, keeping mapping key order.
package yamljson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/speakeasy-api/oasgraph/yml"
	"gopkg.in/yaml.v3"
)

// Encode writes node as JSON to w. Mapping keys keep their document order, merge keys are expanded
// and aliases are followed.
func Encode(node *yaml.Node, indentation int, w io.Writer) error {
	v, err := Value(node)
	if err != nil {
		return err
	}

	e := json.NewEncoder(w)
	e.SetIndent("", strings.Repeat(" ", indentation))

	return e.Encode(v)
}

// Value returns the JSON-compatible value of node. Mappings become ordered maps, sequences []any
// and scalars their decoded value. Non-string keys are rendered as their JSON text.
func Value(node *yaml.Node) (any, error) {
	return value(node, map[*yaml.Node]struct{}{})
}

func value(node *yaml.Node, active map[*yaml.Node]struct{}) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return value(node.Content[0], active)
	case yaml.AliasNode:
		if _, ok := active[node]; ok {
			return nil, fmt.Errorf("alias %q refers to itself", node.Value)
		}
		active[node] = struct{}{}
		defer delete(active, node)
		return value(node.Alias, active)
	case yaml.MappingNode:
		return mappingValue(node, active)
	case yaml.SequenceNode:
		v := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			iv, err := value(item, active)
			if err != nil {
				return nil, err
			}
			v = append(v, iv)
		}
		return v, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown node kind: %s", yml.NodeKindToString(node.Kind))
	}
}

func mappingValue(node *yaml.Node, active map[*yaml.Node]struct{}) (any, error) {
	v := sequencedmap.New[string, any]()
	for _, pair := range yml.MapPairs(node) {
		kv, err := value(pair[0], active)
		if err != nil {
			return nil, err
		}

		key, ok := kv.(string)
		if !ok {
			data, err := json.Marshal(kv)
			if err != nil {
				return nil, err
			}
			key = string(data)
		}

		vv, err := value(pair[1], active)
		if err != nil {
			return nil, err
		}
		v.Set(key, vv)
	}
	return v, nil
}

// Package yml contains helpers for working with raw yaml.v3 node trees.
package yml

import (
	"gopkg.in/yaml.v3"
)

// ResolveAlias follows alias nodes until a non-alias node is reached.
// A self-referencing alias chain resolves to nil.
func ResolveAlias(node *yaml.Node) *yaml.Node {
	seen := map[*yaml.Node]struct{}{}
	for node != nil && node.Kind == yaml.AliasNode {
		if _, ok := seen[node]; ok {
			return nil
		}
		seen[node] = struct{}{}
		node = node.Alias
	}
	return node
}

// Unwrap resolves aliases and steps into the content of document nodes.
func Unwrap(node *yaml.Node) *yaml.Node {
	node = ResolveAlias(node)
	for node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = ResolveAlias(node.Content[0])
	}
	return node
}

// IsMergeKey returns true if the given node is a YAML merge key (<<).
func IsMergeKey(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag == "!!merge" && node.Value == "<<"
}

// MapPairs returns the key/value pairs of a mapping node with merge keys expanded.
// Explicit keys take precedence over merged ones and merged pairs come first.
func MapPairs(mapNode *yaml.Node) [][2]*yaml.Node {
	mapNode = ResolveAlias(mapNode)
	if mapNode == nil || mapNode.Kind != yaml.MappingNode {
		return nil
	}
	return mapPairs(mapNode, map[*yaml.Node]struct{}{})
}

func mapPairs(mapNode *yaml.Node, seen map[*yaml.Node]struct{}) [][2]*yaml.Node {
	if _, ok := seen[mapNode]; ok {
		return nil
	}
	seen[mapNode] = struct{}{}

	content := mapNode.Content
	if len(content)%2 == 1 {
		content = content[:len(content)-1]
	}

	explicit := make(map[string]struct{}, len(content)/2)
	var merges []*yaml.Node
	for i := 0; i < len(content); i += 2 {
		if IsMergeKey(content[i]) {
			merges = append(merges, content[i+1])
			continue
		}
		explicit[keyValue(content[i])] = struct{}{}
	}

	var out [][2]*yaml.Node
	if len(merges) > 0 {
		merged := map[string]struct{}{}
		add := func(target *yaml.Node) {
			target = ResolveAlias(target)
			if target == nil || target.Kind != yaml.MappingNode {
				return
			}
			for _, pair := range mapPairs(target, seen) {
				k := keyValue(pair[0])
				if _, ok := explicit[k]; ok {
					continue
				}
				if _, ok := merged[k]; ok {
					continue
				}
				merged[k] = struct{}{}
				out = append(out, pair)
			}
		}

		for _, m := range merges {
			m = ResolveAlias(m)
			if m == nil {
				continue
			}
			if m.Kind == yaml.SequenceNode {
				for _, item := range m.Content {
					add(item)
				}
				continue
			}
			add(m)
		}
	}

	for i := 0; i < len(content); i += 2 {
		if IsMergeKey(content[i]) {
			continue
		}
		out = append(out, [2]*yaml.Node{content[i], content[i+1]})
	}

	return out
}

// GetMapElementNodes returns the key and value nodes for key within mapNode.
func GetMapElementNodes(mapNode *yaml.Node, key string) (*yaml.Node, *yaml.Node, bool) {
	for _, pair := range MapPairs(mapNode) {
		if keyValue(pair[0]) == key {
			return pair[0], pair[1], true
		}
	}
	return nil, nil, false
}

// CreateStringNode creates a plain string scalar.
func CreateStringNode(value string) *yaml.Node {
	return &yaml.Node{
		Value: value,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
	}
}

func keyValue(node *yaml.Node) string {
	if resolved := ResolveAlias(node); resolved != nil {
		return resolved.Value
	}
	return node.Value
}

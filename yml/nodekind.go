package yml

import "gopkg.in/yaml.v3"

// NodeKindToString returns a human-readable name for a yaml.Kind, used in diagnostics.
func NodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// NodeTagToString returns a human-readable name for a resolved yaml tag.
func NodeTagToString(tag string) string {
	switch tag {
	case "!!str":
		return "string"
	case "!!int":
		return "int"
	case "!!float":
		return "float"
	case "!!bool":
		return "bool"
	case "!!map":
		return "object"
	case "!!seq":
		return "sequence"
	case "!!null":
		return "null"
	default:
		return tag
	}
}

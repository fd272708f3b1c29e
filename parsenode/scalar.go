package parsenode

import (
	"fmt"

	"github.com/speakeasy-api/oasgraph/yml"
)

// GetBool reads a boolean scalar.
func GetBool(n Node) (bool, error) {
	var v bool
	err := decodeScalar(n, &v, "boolean")
	return v, err
}

// GetFloat reads a numeric scalar.
func GetFloat(n Node) (*float64, error) {
	var v float64
	if err := decodeScalar(n, &v, "number"); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetInt reads an integer scalar.
func GetInt(n Node) (*int64, error) {
	var v int64
	if err := decodeScalar(n, &v, "integer"); err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeScalar(n Node, out any, want string) error {
	v, ok := n.(*ValueNode)
	if !ok {
		return structuralErrorFor(n, "value", KindValue)
	}
	if err := v.Decode(out); err != nil {
		return fmt.Errorf("expected %s, got %s %q", want, yml.NodeTagToString(v.node.Tag), v.node.Value)
	}
	return nil
}

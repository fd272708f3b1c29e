package parsenode

import (
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Query selects the descendants of n matching a JSONPath expression.
// RFC 9535 syntax is tried first; expressions it rejects are evaluated with the legacy yamlpath dialect.
func Query(n Node, expr string) ([]Node, error) {
	root := n.YAMLNode()
	if root == nil {
		return nil, nil
	}

	var found []*yaml.Node
	if path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension()); err == nil {
		found = path.Query(root)
	} else {
		legacy, legacyErr := yamlpath.NewPath(expr)
		if legacyErr != nil {
			return nil, fmt.Errorf("invalid jsonpath %q: %w", expr, err)
		}
		found, legacyErr = legacy.Find(root)
		if legacyErr != nil {
			return nil, fmt.Errorf("failed to evaluate jsonpath %q: %w", expr, legacyErr)
		}
	}

	out := make([]Node, 0, len(found))
	for _, node := range found {
		out = append(out, Create(n.Context(), node))
	}
	return out, nil
}

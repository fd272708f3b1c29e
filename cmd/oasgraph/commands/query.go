package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/speakeasy-api/oasgraph/internal/yamljson"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newQueryCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "query <file> <jsonpath>",
		Short: "Select parts of a document with a JSONPath expression",
		Long: `Select the parts of a document matching a JSONPath expression and print them as JSON,
one value per line.

RFC 9535 expressions are supported; expressions RFC 9535 rejects are evaluated with the legacy
JSONPath dialect.

Examples:
  oasgraph query petstore.yaml '$.paths.*.get.operationId'
  oasgraph query petstore.yaml '$.definitions.Pet' --dump`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), args[0], args[1], dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the Go representation of every match instead of JSON")

	return cmd
}

func runQuery(w io.Writer, file, expr string, dump bool) error {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	matches, err := parsenode.Query(parsenode.Create(parsenode.NewContext(), &root), expr)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if dump {
			v, err := yamljson.Value(match.YAMLNode())
			if err != nil {
				return err
			}
			spew.Fdump(w, v)
			continue
		}
		if err := yamljson.Encode(match.YAMLNode(), 0, w); err != nil {
			return err
		}
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/linter/rules"
	"github.com/speakeasy-api/oasgraph/reader"
	"github.com/spf13/cobra"
)

type validateFlags struct {
	format  string
	ruleset string
	disable []string
	strict  bool
}

func newValidateCmd() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Read, resolve and lint Swagger 2.0 documents",
		Long: `Read every document given, resolve the references between them and run the lint rules.

Documents are registered in one workspace under their path, so a reference such as
'common.yaml#/definitions/Pet' in one file is resolved against another file given on the same
command line.

Available rulesets: recommended (default), all

Example configuration (.oasgraph.yaml):

  lint:
    extends: [recommended]
    rules:
      operation-responses:
        severity: error
  resolve:
    strict: true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text or json")
	cmd.Flags().StringVarP(&flags.ruleset, "ruleset", "r", "", "ruleset to extend, overriding the configuration")
	cmd.Flags().StringSliceVarP(&flags.disable, "disable", "d", nil, "rule IDs to disable (can be repeated)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "report references that could not be resolved")

	return cmd
}

func runValidate(cmd *cobra.Command, flags *validateFlags, files []string) error {
	ctx := cmd.Context()

	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	applyValidateFlags(cfg, flags)
	logger := newLogger(cfg)

	_, results, err := reader.ReadFiles(ctx, &reader.FileSystem{}, files, reader.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to read documents: %w", err)
	}

	lint := linter.New(cfg.Lint, rules.NewRegistry())
	out := cmd.OutOrStdout()

	failed := 0
	for _, result := range results {
		output, err := lint.Lint(ctx, linter.NewDocumentInfo(result.Document, result.Location), result.Diagnostic.Errors)
		if err != nil {
			return fmt.Errorf("linting failed: %w", err)
		}

		if err := printOutput(out, flags.format, result.Location, output); err != nil {
			return err
		}
		failed += output.ErrorCount()
	}

	if failed > 0 {
		return fmt.Errorf("validation found %d errors", failed)
	}
	return nil
}

func applyValidateFlags(cfg *Config, flags *validateFlags) {
	if flags.ruleset != "" {
		cfg.Lint.Extends = []string{flags.ruleset}
	}
	for _, id := range flags.disable {
		disableRule(cfg.Lint, id)
	}
	if flags.strict {
		cfg.Strict = true
		enableRule(cfg.Lint, rules.RuleUnresolvedReference)
	}
}

func printOutput(w io.Writer, format, location string, output *linter.Output) error {
	switch format {
	case "json":
		_, err := fmt.Fprintln(w, output.FormatJSON())
		return err
	case "text":
		return renderText(w, location, output.Results)
	default:
		return errors.New("unknown output format " + format)
	}
}

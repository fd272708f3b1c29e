package linter

import (
	"context"

	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
)

// Rule represents a single linting rule
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "paths-leading-slash")
	ID() string

	// Category returns the rule category (e.g., "style", "references", "schemas")
	Category() string

	// Description returns a human-readable description of what the rule checks
	Description() string

	// DefaultSeverity returns the severity used when the configuration does not override it
	DefaultSeverity() validation.Severity

	// Run executes the rule against the document and returns the issues found as validation errors
	Run(ctx context.Context, docInfo *DocumentInfo, config *RuleConfig) []error
}

// RuleVisitor is the walker side of a VisitorRule. It collects its findings while the document
// is walked.
type RuleVisitor interface {
	walk.Visitor
	Errors() []error
}

// VisitorRule is a Rule checked by a visitor. The linter combines the visitors of every enabled
// VisitorRule with walk.Multi and walks the document once for all of them.
type VisitorRule interface {
	Rule
	NewVisitor(docInfo *DocumentInfo, config *RuleConfig) RuleVisitor
}

// RunVisitor walks the document with the visitor of a single rule. VisitorRule implementations
// use it for Run.
func RunVisitor(rule VisitorRule, docInfo *DocumentInfo, config *RuleConfig) []error {
	if docInfo == nil || docInfo.Document == nil {
		return nil
	}
	v := rule.NewVisitor(docInfo, config)
	walk.Walk(docInfo.Document, v)
	return v.Errors()
}

// Package rules contains the built-in lint rules.
package rules

import (
	"strings"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
)

const (
	RulePathsLeadingSlash     = "paths-leading-slash"
	RuleInfoRequiredFields    = "info-required-fields"
	RuleOperationIDUnique     = "operation-id-unique"
	RulePathParametersDefined = "path-parameters-defined"
	RuleOperationResponses    = "operation-responses"
	RuleUnresolvedReference   = "unresolved-reference"
	RuleSchemaExampleValid    = "schema-example-valid"
)

// Recommended lists the rules of the "recommended" ruleset. Strict reference checking is opt in.
var Recommended = []string{
	RulePathsLeadingSlash,
	RuleInfoRequiredFields,
	RuleOperationIDUnique,
	RulePathParametersDefined,
	RuleOperationResponses,
	RuleSchemaExampleValid,
}

// All returns a new instance of every built-in rule.
func All() []linter.Rule {
	return []linter.Rule{
		&PathsLeadingSlashRule{},
		&InfoRequiredFieldsRule{},
		&OperationIDUniqueRule{},
		&PathParametersDefinedRule{},
		&OperationResponsesRule{},
		&UnresolvedReferenceRule{},
		&SchemaExampleValidRule{},
	}
}

// NewRegistry returns a registry holding the built-in rules and the "recommended" ruleset.
func NewRegistry() *linter.Registry {
	registry := linter.NewRegistry()
	for _, rule := range All() {
		registry.Register(rule)
	}
	if err := registry.RegisterRuleset(linter.RulesetRecommended, Recommended); err != nil {
		panic(err)
	}
	return registry
}

// newError creates a diagnostic for rule positioned at the source node of obj, when it has one.
func newError(rule linter.Rule, config *linter.RuleConfig, docInfo *linter.DocumentInfo, err error, location string, obj model.Located) *validation.Error {
	vErr := validation.NewError(config.GetSeverity(rule.DefaultSeverity()), rule.ID(), err, location)
	if obj != nil {
		if node := obj.GetRootNode(); node != nil {
			vErr.Line = node.Line
			vErr.Column = node.Column
		}
	}
	if docInfo != nil {
		vErr.DocumentLocation = docInfo.Location
	}
	return vErr
}

// ruleVisitor is embedded by the visitors of the built-in rules.
type ruleVisitor struct {
	walk.VisitorBase

	rule    linter.Rule
	config  *linter.RuleConfig
	docInfo *linter.DocumentInfo
	errs    []error
}

func newRuleVisitor(rule linter.Rule, docInfo *linter.DocumentInfo, config *linter.RuleConfig) ruleVisitor {
	return ruleVisitor{rule: rule, config: config, docInfo: docInfo}
}

func (v *ruleVisitor) Errors() []error {
	return v.errs
}

func (v *ruleVisitor) report(err error, location string, obj model.Located) {
	v.errs = append(v.errs, newError(v.rule, v.config, v.docInfo, err, location, obj))
}

// operationVisitor remembers the path item being walked so operation hooks know their path.
type operationVisitor struct {
	ruleVisitor

	path string
	item *model.PathItem
}

func (v *operationVisitor) VisitPathItem(item *model.PathItem) {
	v.path = v.CurrentKey()
	v.item = item
}

// method returns the upper-cased method of the operation being visited.
func (v *operationVisitor) method() string {
	return strings.ToUpper(v.CurrentKey())
}

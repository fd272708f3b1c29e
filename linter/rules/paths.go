package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
)

type PathsLeadingSlashRule struct{}

var _ linter.VisitorRule = (*PathsLeadingSlashRule)(nil)

func (r *PathsLeadingSlashRule) ID() string       { return RulePathsLeadingSlash }
func (r *PathsLeadingSlashRule) Category() string { return "style" }
func (r *PathsLeadingSlashRule) Description() string {
	return "Path templates must start with a forward slash."
}
func (r *PathsLeadingSlashRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *PathsLeadingSlashRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *PathsLeadingSlashRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &pathsLeadingSlashVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)}
}

type pathsLeadingSlashVisitor struct {
	ruleVisitor
}

func (v *pathsLeadingSlashVisitor) VisitPathItem(item *model.PathItem) {
	path := v.CurrentKey()
	if strings.HasPrefix(path, "/") {
		return
	}
	v.report(fmt.Errorf("path %q must start with /", path), v.Location(), item)
}

var pathTemplateParam = regexp.MustCompile(`\{([^{}]+)\}`)

type PathParametersDefinedRule struct{}

var _ linter.VisitorRule = (*PathParametersDefinedRule)(nil)

func (r *PathParametersDefinedRule) ID() string       { return RulePathParametersDefined }
func (r *PathParametersDefinedRule) Category() string { return "operations" }
func (r *PathParametersDefinedRule) Description() string {
	return "Every templated segment of a path must be declared as an in: path parameter by the operation or its path item."
}
func (r *PathParametersDefinedRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *PathParametersDefinedRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *PathParametersDefinedRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &pathParametersVisitor{operationVisitor: operationVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)}}
}

type pathParametersVisitor struct {
	operationVisitor
}

func (v *pathParametersVisitor) VisitOperation(op *model.Operation) {
	names := pathTemplateParam.FindAllStringSubmatch(v.path, -1)
	if len(names) == 0 {
		return
	}

	var itemParams []*model.Parameter
	if v.item != nil {
		itemParams = v.item.Parameters
	}
	declared, complete := pathParameters(itemParams, op.Parameters)
	if !complete {
		// An unresolved parameter may declare any name.
		return
	}

	for _, match := range names {
		name := match[1]
		if _, ok := declared[name]; ok {
			continue
		}
		v.report(fmt.Errorf("path parameter %q of %s %s is not defined", name, v.method(), v.path), v.Location(), op)
	}
}

// pathParameters collects the names of the in: path parameters. complete is false when a
// parameter is an unresolved reference.
func pathParameters(lists ...[]*model.Parameter) (map[string]struct{}, bool) {
	declared := map[string]struct{}{}
	for _, params := range lists {
		for _, p := range params {
			if p == nil {
				continue
			}
			if p.IsUnresolved() {
				return nil, false
			}
			if p.In == model.ParameterLocationPath {
				declared[p.Name] = struct{}{}
			}
		}
	}
	return declared, true
}

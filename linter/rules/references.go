package rules

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
)

// UnresolvedReferenceRule reports reference placeholders that no resolution pass has bound.
// References that failed to resolve are already reported by the resolver and are skipped.
type UnresolvedReferenceRule struct{}

var _ linter.VisitorRule = (*UnresolvedReferenceRule)(nil)

func (r *UnresolvedReferenceRule) ID() string       { return RuleUnresolvedReference }
func (r *UnresolvedReferenceRule) Category() string { return "references" }
func (r *UnresolvedReferenceRule) Description() string {
	return "Every reference must be bound to its target. Enable it when all referenced documents are available."
}
func (r *UnresolvedReferenceRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *UnresolvedReferenceRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *UnresolvedReferenceRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &unresolvedVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)}
}

type unresolvedVisitor struct {
	ruleVisitor
}

func (v *unresolvedVisitor) check(obj interface {
	model.Referenceable
	model.Located
}) {
	if !obj.IsUnresolved() {
		return
	}
	ref := obj.GetReference()
	if ref == nil || ref.State == model.ReferenceStateFailed {
		return
	}
	v.report(fmt.Errorf("reference %s is not resolved", ref), v.Location(), obj)
}

func (v *unresolvedVisitor) VisitParameter(param *model.Parameter) {
	v.check(param)
}

func (v *unresolvedVisitor) VisitRequestBody(body *model.RequestBody) {
	v.check(body)
}

func (v *unresolvedVisitor) VisitResponse(response *model.Response) {
	v.check(response)
}

func (v *unresolvedVisitor) VisitHeader(header *model.Header) {
	v.check(header)
}

func (v *unresolvedVisitor) VisitSchema(schema *model.Schema) {
	v.check(schema)
}

func (v *unresolvedVisitor) VisitSecurityScheme(scheme *model.SecurityScheme) {
	v.check(scheme)
}

package rules

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
)

type OperationIDUniqueRule struct{}

var _ linter.VisitorRule = (*OperationIDUniqueRule)(nil)

func (r *OperationIDUniqueRule) ID() string       { return RuleOperationIDUnique }
func (r *OperationIDUniqueRule) Category() string { return "operations" }
func (r *OperationIDUniqueRule) Description() string {
	return "Operation IDs must be unique across the document."
}
func (r *OperationIDUniqueRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *OperationIDUniqueRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *OperationIDUniqueRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &operationIDVisitor{
		operationVisitor: operationVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)},
		first:            map[string]string{},
	}
}

type operationIDVisitor struct {
	operationVisitor

	// first maps an operationId to the "METHOD path" that declared it first.
	first map[string]string
}

func (v *operationIDVisitor) VisitOperation(op *model.Operation) {
	id := op.OperationID
	if id == "" {
		return
	}
	if prev, ok := v.first[id]; ok {
		v.report(fmt.Errorf("operationId %q is already used by %s", id, prev), v.Location()+"/operationId", op)
		return
	}
	v.first[id] = v.method() + " " + v.path
}

type OperationResponsesRule struct{}

var _ linter.VisitorRule = (*OperationResponsesRule)(nil)

func (r *OperationResponsesRule) ID() string       { return RuleOperationResponses }
func (r *OperationResponsesRule) Category() string { return "operations" }
func (r *OperationResponsesRule) Description() string {
	return "Every operation should declare at least one response."
}
func (r *OperationResponsesRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *OperationResponsesRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *OperationResponsesRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &operationResponsesVisitor{operationVisitor: operationVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)}}
}

type operationResponsesVisitor struct {
	operationVisitor
}

func (v *operationResponsesVisitor) VisitOperation(op *model.Operation) {
	if op.Responses != nil && op.Responses.Len() > 0 {
		return
	}
	v.report(fmt.Errorf("%s %s declares no responses", v.method(), v.path), v.Location(), op)
}

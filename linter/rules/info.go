package rules

import (
	"context"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
)

const (
	errInfoMissing        errors.Error = "info object is required"
	errInfoTitleMissing   errors.Error = "info.title is required"
	errInfoVersionMissing errors.Error = "info.version is required"
)

type InfoRequiredFieldsRule struct{}

var _ linter.VisitorRule = (*InfoRequiredFieldsRule)(nil)

func (r *InfoRequiredFieldsRule) ID() string       { return RuleInfoRequiredFields }
func (r *InfoRequiredFieldsRule) Category() string { return "info" }
func (r *InfoRequiredFieldsRule) Description() string {
	return "The document must have an info object with a title and a version."
}
func (r *InfoRequiredFieldsRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *InfoRequiredFieldsRule) Run(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	return linter.RunVisitor(r, docInfo, config)
}

func (r *InfoRequiredFieldsRule) NewVisitor(docInfo *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &infoVisitor{ruleVisitor: newRuleVisitor(r, docInfo, config)}
}

type infoVisitor struct {
	ruleVisitor
}

func (v *infoVisitor) VisitDocument(doc *model.Document) {
	if doc.Info == nil {
		v.report(errInfoMissing, v.Location(), doc)
	}
}

func (v *infoVisitor) VisitInfo(info *model.Info) {
	if info.Title == "" {
		v.report(errInfoTitleMissing, v.Location(), info)
	}
	if info.Version == "" {
		v.report(errInfoVersionMissing, v.Location(), info)
	}
}

// Package linter runs pluggable rules over a document and collects their diagnostics.
//
// Rules are registered in a Registry and grouped into named rulesets. A Config selects rules by
// extending rulesets and then enabling, disabling or re-grading individual rules:
//
//	registry := rules.NewRegistry()
//	output, err := linter.New(linter.NewConfig(), registry).Lint(ctx, linter.NewDocumentInfo(doc, "api.yaml"), diag.Errors)
package linter

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/speakeasy-api/oasgraph/linter/format"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
)

// Linter is the main linting engine
type Linter struct {
	config   *Config
	registry *Registry
}

// New creates a new linter with the given configuration. A nil config uses NewConfig.
func New(config *Config, registry *Registry) *Linter {
	if config == nil {
		config = NewConfig()
	}
	return &Linter{
		config:   config,
		registry: registry,
	}
}

// Registry returns the rule registry
func (l *Linter) Registry() *Registry {
	return l.registry
}

// Lint runs all enabled rules against the document. Pre-existing errors, such as the diagnostics
// produced while reading the document, are merged into the output.
func (l *Linter) Lint(ctx context.Context, docInfo *DocumentInfo, preExistingErrors []error) (*Output, error) {
	var allErrs []error

	if len(preExistingErrors) > 0 {
		allErrs = append(allErrs, preExistingErrors...)
	}

	allErrs = append(allErrs, l.runRules(ctx, docInfo)...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.applySeverityOverrides(allErrs)
	validation.SortValidationErrors(allErrs)

	return &Output{Results: allErrs}, nil
}

func (l *Linter) runRules(ctx context.Context, docInfo *DocumentInfo) []error {
	var (
		mu       sync.Mutex
		errs     []error
		wg       sync.WaitGroup
		visitors []RuleVisitor
	)

	collect := func(found []error) {
		mu.Lock()
		errs = append(errs, found...)
		mu.Unlock()
	}

	for _, rule := range l.EnabledRules() {
		ruleConfig := l.getRuleConfig(rule.ID())

		if vr, ok := rule.(VisitorRule); ok {
			if docInfo != nil && docInfo.Document != nil {
				visitors = append(visitors, vr.NewVisitor(docInfo, &ruleConfig))
			}
			continue
		}

		wg.Add(1)
		go func(r Rule, cfg RuleConfig) {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}
			collect(r.Run(ctx, docInfo, &cfg))
		}(rule, ruleConfig)
	}

	if len(visitors) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}
			combined := make([]walk.Visitor, 0, len(visitors))
			for _, v := range visitors {
				combined = append(combined, v)
			}
			walk.Walk(docInfo.Document, walk.Multi(combined...))
			for _, v := range visitors {
				collect(v.Errors())
			}
		}()
	}

	wg.Wait()
	return errs
}

// EnabledRules returns the rules selected by the configuration, ordered by ID.
// Rulesets are applied first and individual rule settings override them.
func (l *Linter) EnabledRules() []Rule {
	ruleStatus := make(map[string]bool)

	for _, ruleset := range l.config.Extends {
		if ids, ok := l.registry.GetRuleset(ruleset); ok {
			for _, id := range ids {
				ruleStatus[id] = true
			}
		}
	}

	for id, ruleConfig := range l.config.Rules {
		if ruleConfig.Enabled != nil {
			ruleStatus[id] = *ruleConfig.Enabled
		}
	}

	var enabled []Rule
	for id, enabledFlag := range ruleStatus {
		if enabledFlag {
			if rule, ok := l.registry.GetRule(id); ok {
				enabled = append(enabled, rule)
			}
		}
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].ID() < enabled[j].ID()
	})

	return enabled
}

func (l *Linter) getRuleConfig(ruleID string) RuleConfig {
	config := RuleConfig{}

	if ruleConfig, ok := l.config.Rules[ruleID]; ok {
		config.Severity = ruleConfig.Severity
		config.Options = ruleConfig.Options
	}

	return config
}

// applySeverityOverrides replaces overridden diagnostics with copies carrying the configured
// severity. The caller's diagnostics are left as they are.
func (l *Linter) applySeverityOverrides(errs []error) {
	for i, err := range errs {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			continue
		}
		config := l.getRuleConfig(vErr.Rule)
		if config.Severity == nil || *config.Severity == vErr.Severity {
			continue
		}
		overridden := *vErr
		overridden.Severity = *config.Severity
		errs[i] = &overridden
	}
}

// Output represents the result of linting
type Output struct {
	Results []error
}

// HasErrors reports whether any result is error severity. Non-validation errors count as errors.
func (o *Output) HasErrors() bool {
	return o.ErrorCount() > 0
}

func (o *Output) ErrorCount() int {
	count := 0
	for _, err := range o.Results {
		if validation.GetSeverity(err) == validation.SeverityError {
			count++
		}
	}
	return count
}

func (o *Output) FormatText() string {
	s, _ := format.NewTextFormatter().Format(o.Results)
	return s
}

func (o *Output) FormatJSON() string {
	s, _ := format.NewJSONFormatter().Format(o.Results)
	return s
}

package linter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRule struct {
	id              string
	category        string
	defaultSeverity validation.Severity
	runFunc         func(ctx context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error
}

func (r *mockRule) ID() string                           { return r.id }
func (r *mockRule) Category() string                     { return r.category }
func (r *mockRule) Description() string                  { return r.id + " description" }
func (r *mockRule) DefaultSeverity() validation.Severity { return r.defaultSeverity }

func (r *mockRule) Run(ctx context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	if r.runFunc != nil {
		return r.runFunc(ctx, docInfo, config)
	}
	return nil
}

// reportingRule reports a single diagnostic at its configured severity.
func reportingRule(id string, severity validation.Severity, line int) *mockRule {
	return &mockRule{
		id:              id,
		category:        "style",
		defaultSeverity: severity,
		runFunc: func(_ context.Context, _ *linter.DocumentInfo, config *linter.RuleConfig) []error {
			vErr := validation.NewError(config.GetSeverity(severity), id, errors.New(id+" failed"), "#")
			vErr.Line = line
			return []error{vErr}
		},
	}
}

func newRegistry(t *testing.T) *linter.Registry {
	t.Helper()

	registry := linter.NewRegistry()
	registry.Register(reportingRule("rule-a", validation.SeverityError, 3))
	registry.Register(reportingRule("rule-b", validation.SeverityWarning, 1))
	registry.Register(reportingRule("rule-strict", validation.SeverityError, 2))
	require.NoError(t, registry.RegisterRuleset(linter.RulesetRecommended, []string{"rule-a", "rule-b"}))
	return registry
}

func rules(results []error) []string {
	ids := make([]string, 0, len(results))
	for _, err := range results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			ids = append(ids, vErr.Rule)
		}
	}
	return ids
}

func boolPtr(b bool) *bool { return &b }

func severityPtr(s validation.Severity) *validation.Severity { return &s }

func TestLinter_RuleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *linter.Config
		expected []string
	}{
		{
			name:     "default config extends recommended",
			config:   nil,
			expected: []string{"rule-b", "rule-a"},
		},
		{
			name:     "extends all includes every rule",
			config:   &linter.Config{Extends: []string{linter.RulesetAll}},
			expected: []string{"rule-b", "rule-strict", "rule-a"},
		},
		{
			name: "rule config enables a rule outside the ruleset",
			config: &linter.Config{
				Extends: []string{linter.RulesetRecommended},
				Rules:   map[string]linter.RuleConfig{"rule-strict": {Enabled: boolPtr(true)}},
			},
			expected: []string{"rule-b", "rule-strict", "rule-a"},
		},
		{
			name: "rule config disables a rule of the ruleset",
			config: &linter.Config{
				Extends: []string{linter.RulesetAll},
				Rules:   map[string]linter.RuleConfig{"rule-a": {Enabled: boolPtr(false)}},
			},
			expected: []string{"rule-b", "rule-strict"},
		},
		{
			name:     "unknown ruleset selects nothing",
			config:   &linter.Config{Extends: []string{"missing"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lntr := linter.New(tt.config, newRegistry(t))
			output, err := lntr.Lint(t.Context(), linter.NewDocumentInfo(&model.Document{}, "api.yaml"), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rules(output.Results))
		})
	}
}

func TestLinter_SeverityOverride(t *testing.T) {
	t.Parallel()

	config := &linter.Config{
		Extends: []string{linter.RulesetRecommended},
		Rules: map[string]linter.RuleConfig{
			"rule-a": {Severity: severityPtr(validation.SeverityHint)},
			"parse":  {Severity: severityPtr(validation.SeverityWarning)},
		},
	}
	preExisting := []error{validation.NewError(validation.SeverityError, "parse", errors.New("bad input"), "#")}

	output, err := linter.New(config, newRegistry(t)).Lint(t.Context(), linter.NewDocumentInfo(&model.Document{}, ""), preExisting)
	require.NoError(t, err)
	require.Len(t, output.Results, 3)

	severities := map[string]validation.Severity{}
	for _, e := range output.Results {
		vErr := e.(*validation.Error)
		severities[vErr.Rule] = vErr.Severity
	}
	assert.Equal(t, validation.SeverityHint, severities["rule-a"])
	assert.Equal(t, validation.SeverityWarning, severities["rule-b"])
	assert.Equal(t, validation.SeverityWarning, severities["parse"])
	assert.False(t, output.HasErrors())
	assert.Zero(t, output.ErrorCount())

	assert.Equal(t, validation.SeverityError, preExisting[0].(*validation.Error).Severity)
}

func TestLinter_Output(t *testing.T) {
	t.Parallel()

	output, err := linter.New(&linter.Config{Extends: []string{linter.RulesetAll}}, newRegistry(t)).
		Lint(t.Context(), linter.NewDocumentInfo(&model.Document{}, ""), []error{errors.New("internal")})
	require.NoError(t, err)

	assert.True(t, output.HasErrors())
	assert.Equal(t, 3, output.ErrorCount())
	assert.Contains(t, output.FormatText(), "4 problems (3 errors, 1 warnings, 0 hints)")
	assert.True(t, strings.HasPrefix(output.FormatJSON(), "{"))
}

func TestLinter_Cancelled_Error(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := linter.New(nil, newRegistry(t)).Lint(ctx, linter.NewDocumentInfo(&model.Document{}, ""), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLinter_RuleReceivesDocument(t *testing.T) {
	t.Parallel()

	doc := &model.Document{Info: &model.Info{Title: "Pets"}}
	var seen *linter.DocumentInfo

	registry := linter.NewRegistry()
	registry.Register(&mockRule{
		id: "capture",
		runFunc: func(_ context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
			seen = docInfo
			assert.Equal(t, map[string]any{"limit": 3}, config.Options)
			return nil
		},
	})

	config := &linter.Config{
		Extends: []string{linter.RulesetAll},
		Rules:   map[string]linter.RuleConfig{"capture": {Options: map[string]any{"limit": 3}}},
	}
	_, err := linter.New(config, registry).Lint(t.Context(), linter.NewDocumentInfo(doc, "pets.yaml"), nil)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Same(t, doc, seen.Document)
	assert.Equal(t, "pets.yaml", seen.Location)
}

// pathVisitorRule reports every path item it is shown. Run is only used when the rule is called directly.
type pathVisitorRule struct {
	mockRule
}

func (r *pathVisitorRule) Run(_ context.Context, _ *linter.DocumentInfo, _ *linter.RuleConfig) []error {
	return []error{errors.New("run called")}
}

func (r *pathVisitorRule) NewVisitor(_ *linter.DocumentInfo, config *linter.RuleConfig) linter.RuleVisitor {
	return &pathVisitor{id: r.id, severity: config.GetSeverity(r.defaultSeverity)}
}

type pathVisitor struct {
	walk.VisitorBase

	id       string
	severity validation.Severity
	errs     []error
}

func (v *pathVisitor) VisitPathItem(_ *model.PathItem) {
	v.errs = append(v.errs, validation.NewError(v.severity, v.id, errors.New(v.id+" saw "+v.CurrentKey()), v.Location()))
}

func (v *pathVisitor) Errors() []error {
	return v.errs
}

func TestLinter_VisitorRules_SharedWalk(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry()
	registry.Register(&pathVisitorRule{mockRule{id: "visitor-a", defaultSeverity: validation.SeverityError}})
	registry.Register(&pathVisitorRule{mockRule{id: "visitor-b", defaultSeverity: validation.SeverityWarning}})
	registry.Register(reportingRule("plain", validation.SeverityHint, 1))

	doc := &model.Document{}
	doc.CreatePathItem("/pets", func(*model.PathItem) {})

	output, err := linter.New(&linter.Config{Extends: []string{linter.RulesetAll}}, registry).
		Lint(t.Context(), linter.NewDocumentInfo(doc, "api.yaml"), nil)
	require.NoError(t, err)

	require.Len(t, output.Results, 3)
	assert.ElementsMatch(t, []string{"plain", "visitor-a", "visitor-b"}, rules(output.Results))

	for _, e := range output.Results {
		vErr := e.(*validation.Error)
		if vErr.Rule != "plain" {
			assert.Equal(t, "#/paths/~1pets", vErr.Location)
			assert.Contains(t, vErr.Error(), vErr.Rule+" saw /pets")
		}
	}
}

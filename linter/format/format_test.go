package format_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/speakeasy-api/oasgraph/linter/format"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errors   []error
		contains []string
	}{
		{
			name:     "empty errors",
			errors:   []error{},
			contains: []string{},
		},
		{
			name: "single error",
			errors: []error{
				validation.NewError(validation.SeverityError, "test-rule", errors.New("test error message"), "#/paths"),
			},
			contains: []string{"error", "test-rule", "#/paths: test error message", "1 problems (1 errors, 0 warnings, 0 hints)"},
		},
		{
			name: "multiple errors with different severities",
			errors: []error{
				validation.NewError(validation.SeverityError, "error-rule", errors.New("error message"), ""),
				validation.NewError(validation.SeverityWarning, "warning-rule", errors.New("warning message"), ""),
				validation.NewError(validation.SeverityHint, "hint-rule", errors.New("hint message"), ""),
			},
			contains: []string{
				"error\terror-rule\terror message",
				"warning\twarning-rule\twarning message",
				"hint\thint-rule\thint message",
				"3 problems (1 errors, 1 warnings, 1 hints)",
			},
		},
		{
			name: "error with line number and document",
			errors: []error{
				&validation.Error{
					UnderlyingError:  errors.New("at specific location"),
					Line:             42,
					Column:           10,
					Severity:         validation.SeverityError,
					Rule:             "location-rule",
					DocumentLocation: "common.yaml",
				},
			},
			contains: []string{"42:10", "location-rule", "(document: common.yaml)"},
		},
		{
			name:     "non validation error",
			errors:   []error{errors.New("boom")},
			contains: []string{"-\t-\terror\tinternal\tboom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := format.NewTextFormatter().Format(tt.errors)
			require.NoError(t, err)

			for _, substr := range tt.contains {
				assert.Contains(t, result, substr, "output should contain %q", substr)
			}
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	t.Parallel()

	result, err := format.NewJSONFormatter().Format([]error{
		&validation.Error{
			UnderlyingError: errors.New("located error"),
			Line:            15,
			Column:          25,
			Severity:        validation.SeverityError,
			Rule:            "location-rule",
			Location:        "#/info",
		},
		validation.NewError(validation.SeverityWarning, "rule-2", errors.New("error 2"), ""),
		errors.New("boom"),
	})
	require.NoError(t, err)

	var decoded struct {
		Results []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
			Message  string `json:"message"`
			Location struct {
				Line    int    `json:"line"`
				Column  int    `json:"column"`
				Pointer string `json:"pointer"`
			} `json:"location"`
		} `json:"results"`
		Summary format.Counts `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))

	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "location-rule", decoded.Results[0].Rule)
	assert.Equal(t, 15, decoded.Results[0].Location.Line)
	assert.Equal(t, 25, decoded.Results[0].Location.Column)
	assert.Equal(t, "#/info", decoded.Results[0].Location.Pointer)
	assert.Equal(t, "warning", decoded.Results[1].Severity)
	assert.Equal(t, "internal", decoded.Results[2].Rule)
	assert.Equal(t, format.Counts{Total: 3, Errors: 2, Warnings: 1}, decoded.Summary)
	assert.True(t, strings.HasPrefix(result, "{"))
}

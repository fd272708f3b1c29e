package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/oasgraph/validation"
)

// TextFormatter renders one tab separated line per result followed by a summary.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Format(results []error) (string, error) {
	var sb strings.Builder
	var counts Counts

	for _, err := range results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			msg := ""
			if vErr.UnderlyingError != nil {
				msg = vErr.UnderlyingError.Error()
			}
			if vErr.Location != "" {
				msg = fmt.Sprintf("%s: %s", vErr.Location, msg)
			}
			if vErr.DocumentLocation != "" {
				msg = fmt.Sprintf("%s (document: %s)", msg, vErr.DocumentLocation)
			}

			fmt.Fprintf(&sb, "%d:%d\t%s\t%s\t%s\n", vErr.GetLineNumber(), vErr.GetColumnNumber(), vErr.Severity, vErr.Rule, msg)
		} else {
			fmt.Fprintf(&sb, "-\t-\terror\tinternal\t%s\n", err.Error())
		}
		counts.Add(err)
	}

	if len(results) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "✖ %d problems (%d errors, %d warnings, %d hints)\n", counts.Total, counts.Errors, counts.Warnings, counts.Hints)
	}

	return sb.String(), nil
}

// Counts tallies results by severity.
type Counts struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Hints    int `json:"hints"`
}

// Add counts err. Errors that are not diagnostics count as errors.
func (c *Counts) Add(err error) {
	c.Total++
	switch validation.GetSeverity(err) {
	case validation.SeverityError:
		c.Errors++
	case validation.SeverityWarning:
		c.Warnings++
	case validation.SeverityHint:
		c.Hints++
	}
}

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/speakeasy-api/oasgraph/linter/format"
	"github.com/speakeasy-api/oasgraph/validation"
)

const (
	colorRed    = "#FF5F87"
	colorYellow = "#FFD75F"
	colorBlue   = "#5FAFFF"
	colorGray   = "#8A8A8A"
	colorGreen  = "#5FD787"
)

var (
	fileStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	positionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Bold(true)

	severityStyles = map[validation.Severity]lipgloss.Style{
		validation.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true),
		validation.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		validation.SeverityHint:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)),
	}
)

// renderText prints the results of one document, one line per result, with a summary line.
func renderText(w io.Writer, location string, results []error) error {
	if _, err := fmt.Fprintln(w, fileStyle.Render(location)); err != nil {
		return err
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, okStyle.Render("✔ no problems"))
		return err
	}

	var counts format.Counts
	for _, result := range results {
		counts.Add(result)

		var vErr *validation.Error
		if !errors.As(result, &vErr) {
			if _, err := fmt.Fprintf(w, "  %s %s\n", severityStyles[validation.SeverityError].Render("error"), result.Error()); err != nil {
				return err
			}
			continue
		}

		msg := ""
		if vErr.UnderlyingError != nil {
			msg = vErr.UnderlyingError.Error()
		}
		if vErr.Location != "" {
			msg = vErr.Location + ": " + msg
		}

		position := positionStyle.Render(fmt.Sprintf("%d:%d", vErr.GetLineNumber(), vErr.GetColumnNumber()))
		severity := severityStyles[vErr.Severity].Render(fmt.Sprintf("%-7s", vErr.Severity))
		if _, err := fmt.Fprintf(w, "  %s %s %s %s\n", position, severity, msg, ruleStyle.Render(vErr.Rule)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("✖ %d problems (%d errors, %d warnings, %d hints)",
		counts.Total, counts.Errors, counts.Warnings, counts.Hints)))
	return err
}

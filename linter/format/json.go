package format

import (
	"encoding/json"
	"errors"

	"github.com/speakeasy-api/oasgraph/validation"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonOutput struct {
	Results []jsonResult `json:"results"`
	Summary Counts       `json:"summary"`
}

type jsonResult struct {
	Rule     string       `json:"rule"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Location jsonLocation `json:"location"`
	Document string       `json:"document,omitempty"`
}

type jsonLocation struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Pointer string `json:"pointer,omitempty"`
}

func (f *JSONFormatter) Format(results []error) (string, error) {
	output := jsonOutput{
		Results: make([]jsonResult, 0, len(results)),
	}

	for _, err := range results {
		output.Summary.Add(err)

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			output.Results = append(output.Results, jsonResult{
				Rule:     "internal",
				Severity: string(validation.SeverityError),
				Message:  err.Error(),
			})
			continue
		}

		msg := ""
		if vErr.UnderlyingError != nil {
			msg = vErr.UnderlyingError.Error()
		}
		output.Results = append(output.Results, jsonResult{
			Rule:     vErr.Rule,
			Severity: vErr.Severity.String(),
			Message:  msg,
			Location: jsonLocation{
				Line:    vErr.GetLineNumber(),
				Column:  vErr.GetColumnNumber(),
				Pointer: vErr.Location,
			},
			Document: vErr.DocumentLocation,
		})
	}

	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

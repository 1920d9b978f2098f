package format

import (
	"encoding/json"
	"io"

	"github.com/glintjs/glint/runner"
)

type JSONEncoder struct {
	w       io.Writer
	reports []runner.FileReport
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(reports []runner.FileReport) error {
	e.reports = reports
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	files := make([]jsonFile, 0, len(e.reports))
	for _, report := range e.reports {
		files = append(files, buildFileData(report))
	}
	return json.MarshalIndent(jsonOutput{Files: files}, "", "  ")
}

type jsonOutput struct {
	Files []jsonFile `json:"files"`
}

type jsonFile struct {
	Path        string           `json:"path"`
	Errors      int              `json:"errors"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Findings    []jsonFinding    `json:"findings,omitempty"`
}

type jsonDiagnostic struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type jsonFinding struct {
	Rule string `json:"rule"`
	jsonDiagnostic
	Fixable bool `json:"fixable"`
}

func buildFileData(report runner.FileReport) jsonFile {
	file := jsonFile{
		Path:   report.Path,
		Errors: report.ErrorCount(),
	}
	for _, d := range report.Result.Diagnostics {
		pos := report.Result.Lines.Position(d.Span.Start)
		file.Diagnostics = append(file.Diagnostics, jsonDiagnostic{
			Line:     pos.Line,
			Column:   pos.Column,
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}
	for _, f := range report.Findings {
		pos := report.Result.Lines.Position(f.Diagnostic.Span.Start)
		file.Findings = append(file.Findings, jsonFinding{
			Rule: f.Rule,
			jsonDiagnostic: jsonDiagnostic{
				Line:     pos.Line,
				Column:   pos.Column,
				Severity: f.Diagnostic.Severity.String(),
				Message:  f.Diagnostic.Message,
			},
			Fixable: f.Action != nil,
		})
	}
	return file
}

package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/glintjs/glint/runner"
)

// TextEncoder prints one `path:line:col: severity: message` line per
// diagnostic, the layout editors and CI log scrapers expect.
type TextEncoder struct {
	w       io.Writer
	reports []runner.FileReport
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(reports []runner.FileReport) error {
	e.reports = reports
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, report := range e.reports {
		for _, d := range report.Result.Diagnostics {
			pos := report.Result.Lines.Position(d.Span.Start)
			fmt.Fprintf(&buf, "%s:%d:%d: %s: %s\n",
				report.Path, pos.Line, pos.Column, d.Severity, d.Message)
		}
		for _, f := range report.Findings {
			pos := report.Result.Lines.Position(f.Diagnostic.Span.Start)
			fmt.Fprintf(&buf, "%s:%d:%d: %s: %s [%s]\n",
				report.Path, pos.Line, pos.Column,
				f.Diagnostic.Severity, f.Diagnostic.Message, f.Rule)
		}
	}
	return buf.Bytes(), nil
}

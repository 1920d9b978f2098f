package parser

import "fmt"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Label points at a secondary span that gives the diagnostic context,
// e.g. the opening brace a missing closing brace should have matched.
type Label struct {
	Span    Span
	Message string
}

type Diagnostic struct {
	Span     Span
	Severity Severity
	Message  string
	Labels   []Label
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d..%d: %s", d.Severity, d.Span.Start, d.Span.End, d.Message)
}

// LineIndex maps byte offsets to line/column positions. Built once per
// source buffer, shared by every diagnostic renderer.
type LineIndex struct {
	starts []int
}

func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

func (ix *LineIndex) Position(offset int) Position {
	lo, hi := 0, len(ix.starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if ix.starts[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo - 1
	return Position{Line: line + 1, Column: offset - ix.starts[line] + 1}
}

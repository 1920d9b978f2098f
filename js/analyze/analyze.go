// Package analyze runs lint rules over syntax trees. Rules are pure
// functions from a tree to findings; a finding may carry a code action
// that rewrites the tree.
package analyze

import (
	"github.com/glintjs/glint/js/parser"
)

// Applicability states how safely an action can be applied without
// review.
type Applicability int

const (
	// ApplicabilityAlways marks a fix that preserves program behavior.
	ApplicabilityAlways Applicability = iota
	// ApplicabilityMaybeIncorrect marks a fix that expresses the likely
	// intent but may change behavior; editors surface it as a
	// suggestion.
	ApplicabilityMaybeIncorrect
)

func (a Applicability) String() string {
	if a == ApplicabilityAlways {
		return "always"
	}
	return "maybe-incorrect"
}

// Action is a proposed rewrite attached to a finding.
type Action struct {
	Category      string
	Message       string
	Applicability Applicability
	// Rewritten is the new tree root with the fix applied. Printing it
	// yields the fixed source.
	Rewritten *parser.SyntaxNode
}

// Finding is one rule violation at one location.
type Finding struct {
	Rule       string
	Diagnostic parser.Diagnostic
	Action     *Action
}

// Rule inspects a tree and reports findings through the context.
type Rule interface {
	Name() string
	Check(ctx *Context)
}

// Context carries the tree being analyzed and collects findings.
type Context struct {
	Root     *parser.SyntaxNode
	findings []Finding
}

func (c *Context) Report(f Finding) {
	c.findings = append(c.findings, f)
}

// Diagnose is shorthand for reporting a warning without an action.
func (c *Context) Diagnose(rule string, span parser.Span, message string) {
	c.Report(Finding{
		Rule: rule,
		Diagnostic: parser.Diagnostic{
			Span:     span,
			Severity: parser.SeverityWarning,
			Message:  message,
		},
	})
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		NoUnsafeNegation{},
		NoDebugger{},
		NoDoubleEquals{},
	}
}

// Run applies the rules to a parsed tree and returns the findings in
// source order per rule.
func Run(root *parser.SyntaxNode, rules ...Rule) []Finding {
	if root == nil {
		return nil
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	ctx := &Context{Root: root}
	for _, rule := range rules {
		rule.Check(ctx)
	}
	return ctx.findings
}

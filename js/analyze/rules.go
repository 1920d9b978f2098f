package analyze

import (
	"fmt"

	"github.com/glintjs/glint/js/ast"
	"github.com/glintjs/glint/js/parser"
)

// NoUnsafeNegation flags `!x in y` and `!x instanceof y`, where the
// negation binds to the left operand rather than to the whole
// relational expression. The fix parenthesizes the negation, making the
// parsed grouping explicit.
type NoUnsafeNegation struct{}

func (NoUnsafeNegation) Name() string { return "noUnsafeNegation" }

func (r NoUnsafeNegation) Check(ctx *Context) {
	ctx.Root.Preorder(func(n *parser.SyntaxNode) bool {
		rel, ok := ast.AsInOrInstanceofExpression(n)
		if !ok {
			return true
		}
		left, ok := rel.Left()
		if !ok {
			return true
		}
		unary, ok := ast.AsUnaryExpression(left)
		if !ok {
			return true
		}
		op, ok := unary.Operator()
		if !ok || op.Kind() != parser.TokenNot {
			return true
		}

		finding := Finding{
			Rule: r.Name(),
			Diagnostic: parser.Diagnostic{
				Span:     left.Span(),
				Severity: parser.SeverityWarning,
				Message: fmt.Sprintf(
					"the negation applies to the left operand of %q, not to the whole expression",
					rel.OperatorText()),
			},
		}

		rewritten := parser.Replace(ctx.Root, left, parser.Parenthesize(left))
		finding.Action = &Action{
			Category:      "quickfix",
			Message:       "wrap the negation in parentheses to make the grouping explicit",
			Applicability: ApplicabilityMaybeIncorrect,
			Rewritten:     rewritten,
		}
		ctx.Report(finding)
		return true
	})
}

// NoDebugger flags debugger statements left in source.
type NoDebugger struct{}

func (NoDebugger) Name() string { return "noDebugger" }

func (r NoDebugger) Check(ctx *Context) {
	ctx.Root.Preorder(func(n *parser.SyntaxNode) bool {
		if n.Kind() == parser.KindDebuggerStmt {
			ctx.Diagnose(r.Name(), n.Span(), "remove this debugger statement before shipping")
		}
		return true
	})
}

// NoDoubleEquals flags loose equality except against null, where the
// idiom covers undefined as well.
type NoDoubleEquals struct{}

func (NoDoubleEquals) Name() string { return "noDoubleEquals" }

func (r NoDoubleEquals) Check(ctx *Context) {
	ctx.Root.Preorder(func(n *parser.SyntaxNode) bool {
		bin, ok := ast.AsBinaryExpression(n)
		if !ok {
			return true
		}
		op, ok := bin.Operator()
		if !ok {
			return true
		}
		if op.Kind() != parser.TokenEQ && op.Kind() != parser.TokenNE {
			return true
		}
		if isNullLiteral(bin) {
			return true
		}
		strict := "==="
		if op.Kind() == parser.TokenNE {
			strict = "!=="
		}
		ctx.Diagnose(r.Name(), op.Span(),
			fmt.Sprintf("use %q to avoid implicit type coercion", strict))
		return true
	})
}

func isNullLiteral(bin ast.BinaryExpression) bool {
	for _, side := range []func() (*parser.SyntaxNode, bool){bin.Left, bin.Right} {
		n, ok := side()
		if !ok {
			continue
		}
		if lit, ok := ast.AsLiteral(n); ok {
			if tok, ok := lit.Token(); ok && tok.Kind() == parser.TokenNull {
				return true
			}
		}
	}
	return false
}

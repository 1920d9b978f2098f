// Package ast provides typed, read-only views over the untyped syntax
// tree. A view is a thin wrapper around a node of a known kind; the
// casts validate the kind and the accessors are fallible, because a
// recovered tree can be missing any child.
package ast

import "github.com/glintjs/glint/js/parser"

// Node is implemented by every typed view.
type Node interface {
	Syntax() *parser.SyntaxNode
}

// FindAll collects every node in the subtree the cast accepts, in
// preorder. Pass one of the AsX constructors:
//
//	calls := ast.FindAll(root, ast.AsCallExpression)
func FindAll[T Node](root *parser.SyntaxNode, cast func(*parser.SyntaxNode) (T, bool)) []T {
	var out []T
	if root == nil {
		return out
	}
	root.Preorder(func(n *parser.SyntaxNode) bool {
		if view, ok := cast(n); ok {
			out = append(out, view)
		}
		return true
	})
	return out
}

// --- roots ---

type Root struct{ node *parser.SyntaxNode }

func AsRoot(n *parser.SyntaxNode) (Root, bool) {
	if n == nil || !n.Kind().IsRoot() {
		return Root{}, false
	}
	return Root{n}, true
}

func (r Root) Syntax() *parser.SyntaxNode { return r.node }

func (r Root) IsModule() bool { return r.node.Kind() == parser.KindModule }

// Statements returns the top-level statements and declarations.
func (r Root) Statements() []*parser.SyntaxNode {
	return r.node.ChildNodes()
}

// --- expressions ---

type Identifier struct{ node *parser.SyntaxNode }

func AsIdentifier(n *parser.SyntaxNode) (Identifier, bool) {
	if n == nil || n.Kind() != parser.KindIdentifier {
		return Identifier{}, false
	}
	return Identifier{n}, true
}

func (e Identifier) Syntax() *parser.SyntaxNode { return e.node }

// Name returns the identifier text, or false when recovery left the
// node empty.
func (e Identifier) Name() (string, bool) {
	tok := e.node.FirstToken()
	if tok == nil {
		return "", false
	}
	return tok.Text(), true
}

type Literal struct{ node *parser.SyntaxNode }

func AsLiteral(n *parser.SyntaxNode) (Literal, bool) {
	if n == nil || n.Kind() != parser.KindLiteral {
		return Literal{}, false
	}
	return Literal{n}, true
}

func (e Literal) Syntax() *parser.SyntaxNode { return e.node }

func (e Literal) Token() (*parser.SyntaxToken, bool) {
	tok := e.node.FirstToken()
	return tok, tok != nil
}

type UnaryExpression struct{ node *parser.SyntaxNode }

func AsUnaryExpression(n *parser.SyntaxNode) (UnaryExpression, bool) {
	if n == nil || n.Kind() != parser.KindUnaryExpr {
		return UnaryExpression{}, false
	}
	return UnaryExpression{n}, true
}

func (e UnaryExpression) Syntax() *parser.SyntaxNode { return e.node }

// Operator returns the prefix operator token.
func (e UnaryExpression) Operator() (*parser.SyntaxToken, bool) {
	toks := e.node.ChildTokens()
	if len(toks) == 0 {
		return nil, false
	}
	return toks[0], true
}

func (e UnaryExpression) Operand() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

type BinaryExpression struct{ node *parser.SyntaxNode }

func AsBinaryExpression(n *parser.SyntaxNode) (BinaryExpression, bool) {
	if n == nil || n.Kind() != parser.KindBinaryExpr {
		return BinaryExpression{}, false
	}
	return BinaryExpression{n}, true
}

func (e BinaryExpression) Syntax() *parser.SyntaxNode { return e.node }

func (e BinaryExpression) Left() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

func (e BinaryExpression) Right() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(1)
	return n, n != nil
}

func (e BinaryExpression) Operator() (*parser.SyntaxToken, bool) {
	toks := e.node.ChildTokens()
	if len(toks) == 0 {
		return nil, false
	}
	return toks[0], true
}

type LogicalExpression struct{ node *parser.SyntaxNode }

func AsLogicalExpression(n *parser.SyntaxNode) (LogicalExpression, bool) {
	if n == nil || n.Kind() != parser.KindLogicalExpr {
		return LogicalExpression{}, false
	}
	return LogicalExpression{n}, true
}

func (e LogicalExpression) Syntax() *parser.SyntaxNode { return e.node }

func (e LogicalExpression) Left() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

func (e LogicalExpression) Right() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(1)
	return n, n != nil
}

// InOrInstanceofExpression is the closed union of the two relational
// keyword operators. Rules that care about either member match the
// union once instead of the kinds twice.
type InOrInstanceofExpression struct{ node *parser.SyntaxNode }

func AsInOrInstanceofExpression(n *parser.SyntaxNode) (InOrInstanceofExpression, bool) {
	if n == nil {
		return InOrInstanceofExpression{}, false
	}
	switch n.Kind() {
	case parser.KindInExpr, parser.KindInstanceofExpr:
		return InOrInstanceofExpression{n}, true
	}
	return InOrInstanceofExpression{}, false
}

func (e InOrInstanceofExpression) Syntax() *parser.SyntaxNode { return e.node }

func (e InOrInstanceofExpression) Left() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

func (e InOrInstanceofExpression) Right() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(1)
	return n, n != nil
}

// OperatorText returns "in" or "instanceof".
func (e InOrInstanceofExpression) OperatorText() string {
	if e.node.Kind() == parser.KindInExpr {
		return "in"
	}
	return "instanceof"
}

type CallExpression struct{ node *parser.SyntaxNode }

func AsCallExpression(n *parser.SyntaxNode) (CallExpression, bool) {
	if n == nil || n.Kind() != parser.KindCallExpr {
		return CallExpression{}, false
	}
	return CallExpression{n}, true
}

func (e CallExpression) Syntax() *parser.SyntaxNode { return e.node }

func (e CallExpression) Callee() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

// Arguments returns the argument expressions, spreads included.
func (e CallExpression) Arguments() []*parser.SyntaxNode {
	args := e.node.FirstChildOfKind(parser.KindArguments)
	if args == nil {
		return nil
	}
	return args.ChildNodes()
}

type MemberExpression struct{ node *parser.SyntaxNode }

func AsMemberExpression(n *parser.SyntaxNode) (MemberExpression, bool) {
	if n == nil || n.Kind() != parser.KindMemberExpr {
		return MemberExpression{}, false
	}
	return MemberExpression{n}, true
}

func (e MemberExpression) Syntax() *parser.SyntaxNode { return e.node }

func (e MemberExpression) Object() (*parser.SyntaxNode, bool) {
	n := e.node.NthChildNode(0)
	return n, n != nil
}

// PropertyName returns the member name text after '.' or '?.'.
func (e MemberExpression) PropertyName() (string, bool) {
	toks := e.node.ChildTokens()
	if len(toks) < 2 {
		return "", false
	}
	return toks[len(toks)-1].Text(), true
}

// --- statements ---

type ExpressionStatement struct{ node *parser.SyntaxNode }

func AsExpressionStatement(n *parser.SyntaxNode) (ExpressionStatement, bool) {
	if n == nil || n.Kind() != parser.KindExprStmt {
		return ExpressionStatement{}, false
	}
	return ExpressionStatement{n}, true
}

func (s ExpressionStatement) Syntax() *parser.SyntaxNode { return s.node }

func (s ExpressionStatement) Expression() (*parser.SyntaxNode, bool) {
	n := s.node.NthChildNode(0)
	return n, n != nil
}

type VariableStatement struct{ node *parser.SyntaxNode }

func AsVariableStatement(n *parser.SyntaxNode) (VariableStatement, bool) {
	if n == nil || n.Kind() != parser.KindVarStmt {
		return VariableStatement{}, false
	}
	return VariableStatement{n}, true
}

func (s VariableStatement) Syntax() *parser.SyntaxNode { return s.node }

func (s VariableStatement) Declaration() (VariableDeclaration, bool) {
	return AsVariableDeclaration(s.node.FirstChildOfKind(parser.KindVarDecl))
}

type VariableDeclaration struct{ node *parser.SyntaxNode }

func AsVariableDeclaration(n *parser.SyntaxNode) (VariableDeclaration, bool) {
	if n == nil || n.Kind() != parser.KindVarDecl {
		return VariableDeclaration{}, false
	}
	return VariableDeclaration{n}, true
}

func (d VariableDeclaration) Syntax() *parser.SyntaxNode { return d.node }

// KeywordText returns "var", "let", or "const".
func (d VariableDeclaration) KeywordText() (string, bool) {
	tok := d.node.FirstToken()
	if tok == nil {
		return "", false
	}
	return tok.Text(), true
}

func (d VariableDeclaration) Declarators() []VariableDeclarator {
	var out []VariableDeclarator
	for _, n := range d.node.ChildrenOfKind(parser.KindVarDeclarator) {
		out = append(out, VariableDeclarator{n})
	}
	return out
}

type VariableDeclarator struct{ node *parser.SyntaxNode }

func AsVariableDeclarator(n *parser.SyntaxNode) (VariableDeclarator, bool) {
	if n == nil || n.Kind() != parser.KindVarDeclarator {
		return VariableDeclarator{}, false
	}
	return VariableDeclarator{n}, true
}

func (d VariableDeclarator) Syntax() *parser.SyntaxNode { return d.node }

func (d VariableDeclarator) Binding() (*parser.SyntaxNode, bool) {
	n := d.node.NthChildNode(0)
	return n, n != nil
}

// Initializer returns the expression after '=', when present.
func (d VariableDeclarator) Initializer() (*parser.SyntaxNode, bool) {
	if d.node.FirstTokenOfKind(parser.TokenAssign) == nil {
		return nil, false
	}
	n := d.node.NthChildNode(1)
	return n, n != nil
}

type IfStatement struct{ node *parser.SyntaxNode }

func AsIfStatement(n *parser.SyntaxNode) (IfStatement, bool) {
	if n == nil || n.Kind() != parser.KindIfStmt {
		return IfStatement{}, false
	}
	return IfStatement{n}, true
}

func (s IfStatement) Syntax() *parser.SyntaxNode { return s.node }

func (s IfStatement) Condition() (*parser.SyntaxNode, bool) {
	n := s.node.NthChildNode(0)
	return n, n != nil
}

func (s IfStatement) Consequent() (*parser.SyntaxNode, bool) {
	n := s.node.NthChildNode(1)
	return n, n != nil
}

// Alternate returns the else branch, when present.
func (s IfStatement) Alternate() (*parser.SyntaxNode, bool) {
	if s.node.FirstTokenOfKind(parser.TokenElse) == nil {
		return nil, false
	}
	n := s.node.NthChildNode(2)
	return n, n != nil
}

// --- declarations ---

type FunctionDeclaration struct{ node *parser.SyntaxNode }

func AsFunctionDeclaration(n *parser.SyntaxNode) (FunctionDeclaration, bool) {
	if n == nil || n.Kind() != parser.KindFunctionDecl {
		return FunctionDeclaration{}, false
	}
	return FunctionDeclaration{n}, true
}

func (d FunctionDeclaration) Syntax() *parser.SyntaxNode { return d.node }

func (d FunctionDeclaration) Name() (string, bool) {
	id, ok := AsIdentifier(d.node.FirstChildOfKind(parser.KindIdentifier))
	if !ok {
		return "", false
	}
	return id.Name()
}

func (d FunctionDeclaration) Parameters() []*parser.SyntaxNode {
	params := d.node.FirstChildOfKind(parser.KindParameters)
	if params == nil {
		return nil
	}
	return params.ChildrenOfKind(parser.KindParameter)
}

func (d FunctionDeclaration) Body() (*parser.SyntaxNode, bool) {
	n := d.node.FirstChildOfKind(parser.KindBlock)
	return n, n != nil
}

type ClassDeclaration struct{ node *parser.SyntaxNode }

func AsClassDeclaration(n *parser.SyntaxNode) (ClassDeclaration, bool) {
	if n == nil || n.Kind() != parser.KindClassDecl {
		return ClassDeclaration{}, false
	}
	return ClassDeclaration{n}, true
}

func (d ClassDeclaration) Syntax() *parser.SyntaxNode { return d.node }

func (d ClassDeclaration) Name() (string, bool) {
	id, ok := AsIdentifier(d.node.FirstChildOfKind(parser.KindIdentifier))
	if !ok {
		return "", false
	}
	return id.Name()
}

func (d ClassDeclaration) Members() []*parser.SyntaxNode {
	body := d.node.FirstChildOfKind(parser.KindClassBody)
	if body == nil {
		return nil
	}
	return body.ChildNodes()
}

type ImportDeclaration struct{ node *parser.SyntaxNode }

func AsImportDeclaration(n *parser.SyntaxNode) (ImportDeclaration, bool) {
	if n == nil || n.Kind() != parser.KindImportDecl {
		return ImportDeclaration{}, false
	}
	return ImportDeclaration{n}, true
}

func (d ImportDeclaration) Syntax() *parser.SyntaxNode { return d.node }

// ModuleSpecifier returns the quoted module name string token text.
func (d ImportDeclaration) ModuleSpecifier() (string, bool) {
	tok := d.node.FirstTokenOfKind(parser.TokenString)
	if tok == nil {
		return "", false
	}
	return tok.Text(), true
}

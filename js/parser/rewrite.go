package parser

// Tree rewriting. Trees are immutable, so an edit produces a new root:
// the spine from the replaced element up to the root is rebuilt and
// every subtree off the spine is shared by reference with the original.
//
// Sharing has a cost: parent pointers and spans inside shared subtrees
// still describe the original tree, and the rewrite never touches them,
// so the original stays fully intact. A rewritten tree supports
// downward navigation and printing; callers that need upward navigation
// or further edits reparse the printed text.

// Replace returns a new root with target swapped for replacement,
// keeping the source trivia that surrounded the target: the
// replacement's edge tokens adopt the target's leading and trailing
// trivia, so comments and layout survive the edit.
//
// Target must be a descendant of root; if it is not, root is returned
// unchanged.
func Replace(root *SyntaxNode, target, replacement SyntaxElement) *SyntaxNode {
	leading, trailing := edgeTrivia(target)
	if r := withLeadingTrivia(replacement, leading); r != nil {
		replacement = r
	}
	if r := withTrailingTrivia(replacement, trailing); r != nil {
		replacement = r
	}
	return ReplaceDiscardTrivia(root, target, replacement)
}

// ReplaceDiscardTrivia swaps target for replacement exactly as given.
// The target's trivia disappears from the output; use Replace when the
// edit should keep surrounding comments.
func ReplaceDiscardTrivia(root *SyntaxNode, target, replacement SyntaxElement) *SyntaxNode {
	spine := pathToRoot(root, target)
	if spine == nil {
		return root
	}

	newChild := replacement
	oldChild := target
	for _, ancestor := range spine {
		clone := &SyntaxNode{kind: ancestor.kind}
		clone.children = make([]SyntaxElement, len(ancestor.children))
		for i, c := range ancestor.children {
			if c == oldChild {
				clone.children[i] = newChild
			} else {
				clone.children[i] = c
			}
		}
		clone.span = childrenSpan(clone.children)
		oldChild = ancestor
		newChild = clone
	}
	return newChild.(*SyntaxNode)
}

// pathToRoot returns target's ancestors innermost first, ending at
// root, or nil when target does not descend from root.
func pathToRoot(root *SyntaxNode, target SyntaxElement) []*SyntaxNode {
	var spine []*SyntaxNode
	for n := target.Parent(); n != nil; n = n.Parent() {
		spine = append(spine, n)
		if n == root {
			return spine
		}
	}
	return nil
}

func edgeTrivia(el SyntaxElement) (leading, trailing []Trivia) {
	switch e := el.(type) {
	case *SyntaxToken:
		return e.Token.Leading, e.Token.Trailing
	case *SyntaxNode:
		if first := e.FirstToken(); first != nil {
			leading = first.Token.Leading
		}
		if last := e.LastToken(); last != nil {
			trailing = last.Token.Trailing
		}
	}
	return leading, trailing
}

// withLeadingTrivia returns a copy of el whose leftmost token carries
// the given leading trivia. Only the spine down to that token is
// cloned.
func withLeadingTrivia(el SyntaxElement, trivia []Trivia) SyntaxElement {
	switch e := el.(type) {
	case *SyntaxToken:
		tok := e.Token
		tok.Leading = trivia
		return &SyntaxToken{Token: tok}
	case *SyntaxNode:
		for i, c := range e.children {
			replaced := withLeadingTrivia(c, trivia)
			if replaced == nil {
				continue
			}
			return cloneWithChild(e, i, replaced)
		}
	}
	return nil
}

// withTrailingTrivia mirrors withLeadingTrivia for the rightmost token.
func withTrailingTrivia(el SyntaxElement, trivia []Trivia) SyntaxElement {
	switch e := el.(type) {
	case *SyntaxToken:
		tok := e.Token
		tok.Trailing = trivia
		return &SyntaxToken{Token: tok}
	case *SyntaxNode:
		for i := len(e.children) - 1; i >= 0; i-- {
			replaced := withTrailingTrivia(e.children[i], trivia)
			if replaced == nil {
				continue
			}
			return cloneWithChild(e, i, replaced)
		}
	}
	return nil
}

func cloneWithChild(n *SyntaxNode, i int, child SyntaxElement) *SyntaxNode {
	clone := &SyntaxNode{kind: n.kind, span: n.span}
	clone.children = make([]SyntaxElement, len(n.children))
	copy(clone.children, n.children)
	clone.children[i] = child
	return clone
}

// --- construction helpers for fixes ---

// MakeToken builds a detached token with no trivia and no source span.
func MakeToken(kind TokenKind, text string) *SyntaxToken {
	return &SyntaxToken{Token: Token{Kind: kind, Literal: text}}
}

// MakeNode builds a detached node from the given children. Children
// taken from an existing tree keep their original parent pointers.
func MakeNode(kind SyntaxKind, children ...SyntaxElement) *SyntaxNode {
	n := &SyntaxNode{kind: kind, children: children}
	n.span = childrenSpan(children)
	return n
}

// Parenthesize wraps an expression in parentheses. The expression's
// edge trivia moves off the expression so that Replace can put the
// target's trivia on the parentheses without printing it twice.
func Parenthesize(expr SyntaxElement) *SyntaxNode {
	if stripped := withLeadingTrivia(expr, nil); stripped != nil {
		expr = stripped
	}
	if stripped := withTrailingTrivia(expr, nil); stripped != nil {
		expr = stripped
	}
	return MakeNode(KindParenExpr,
		MakeToken(TokenLParen, "("),
		expr,
		MakeToken(TokenRParen, ")"),
	)
}

// MakeUnary builds a prefix unary expression from an operator token and
// an operand.
func MakeUnary(op *SyntaxToken, operand SyntaxElement) *SyntaxNode {
	return MakeNode(KindUnaryExpr, op, operand)
}

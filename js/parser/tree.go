package parser

import (
	"strconv"
	"strings"
)

// SyntaxElement is either a *SyntaxNode or a *SyntaxToken. The tree
// owns its elements; parent pointers are non-owning back references
// used only for upward navigation.
type SyntaxElement interface {
	Span() Span
	Parent() *SyntaxNode
	writeText(sb *strings.Builder, withTrivia bool)
	setParent(n *SyntaxNode)
}

// SyntaxToken is a leaf tree element wrapping one lexed token together
// with its trivia.
type SyntaxToken struct {
	Token  Token
	parent *SyntaxNode
}

func (t *SyntaxToken) Span() Span           { return t.Token.Span }
func (t *SyntaxToken) Kind() TokenKind      { return t.Token.Kind }
func (t *SyntaxToken) Parent() *SyntaxNode  { return t.parent }
func (t *SyntaxToken) Text() string         { return t.Token.Literal }
func (t *SyntaxToken) setParent(n *SyntaxNode) { t.parent = n }

func (t *SyntaxToken) writeText(sb *strings.Builder, withTrivia bool) {
	if withTrivia {
		sb.WriteString(t.Token.Text())
		return
	}
	sb.WriteString(t.Token.Literal)
}

// SyntaxNode is an interior tree element. Nodes are immutable after
// construction: readers on any number of goroutines may share a tree
// without locking, and rewrites build new trees that share unchanged
// subtrees with the old one.
type SyntaxNode struct {
	kind     SyntaxKind
	span     Span
	children []SyntaxElement
	parent   *SyntaxNode
}

func (n *SyntaxNode) Kind() SyntaxKind    { return n.kind }
func (n *SyntaxNode) Span() Span          { return n.span }
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }
func (n *SyntaxNode) setParent(p *SyntaxNode) { n.parent = p }

// Children returns the node's direct children, tokens included. The
// returned slice must not be mutated.
func (n *SyntaxNode) Children() []SyntaxElement {
	return n.children
}

// ChildNodes returns the direct child nodes, skipping tokens.
func (n *SyntaxNode) ChildNodes() []*SyntaxNode {
	var nodes []*SyntaxNode
	for _, c := range n.children {
		if child, ok := c.(*SyntaxNode); ok {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// ChildTokens returns the direct child tokens, skipping nodes.
func (n *SyntaxNode) ChildTokens() []*SyntaxToken {
	var toks []*SyntaxToken
	for _, c := range n.children {
		if tok, ok := c.(*SyntaxToken); ok {
			toks = append(toks, tok)
		}
	}
	return toks
}

// NthChildNode returns the i-th child node (token children do not
// count), or nil when the node has fewer child nodes. Recovered trees
// routinely miss children, so absence is an ordinary result.
func (n *SyntaxNode) NthChildNode(i int) *SyntaxNode {
	for _, c := range n.children {
		child, ok := c.(*SyntaxNode)
		if !ok {
			continue
		}
		if i == 0 {
			return child
		}
		i--
	}
	return nil
}

func (n *SyntaxNode) FirstChildOfKind(kind SyntaxKind) *SyntaxNode {
	for _, c := range n.children {
		if child, ok := c.(*SyntaxNode); ok && child.kind == kind {
			return child
		}
	}
	return nil
}

func (n *SyntaxNode) ChildrenOfKind(kind SyntaxKind) []*SyntaxNode {
	var result []*SyntaxNode
	for _, c := range n.children {
		if child, ok := c.(*SyntaxNode); ok && child.kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstTokenOfKind returns the first direct child token of the given
// kind, or nil.
func (n *SyntaxNode) FirstTokenOfKind(kind TokenKind) *SyntaxToken {
	for _, c := range n.children {
		if tok, ok := c.(*SyntaxToken); ok && tok.Kind() == kind {
			return tok
		}
	}
	return nil
}

// FirstToken returns the leftmost token in the subtree, or nil for an
// empty node.
func (n *SyntaxNode) FirstToken() *SyntaxToken {
	for _, c := range n.children {
		switch child := c.(type) {
		case *SyntaxToken:
			return child
		case *SyntaxNode:
			if tok := child.FirstToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// LastToken returns the rightmost token in the subtree, or nil.
func (n *SyntaxNode) LastToken() *SyntaxToken {
	for i := len(n.children) - 1; i >= 0; i-- {
		switch child := n.children[i].(type) {
		case *SyntaxToken:
			return child
		case *SyntaxNode:
			if tok := child.LastToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// Preorder walks the subtree rooted at n in document order. Returning
// false from visit skips the node's children.
func (n *SyntaxNode) Preorder(visit func(*SyntaxNode) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		if child, ok := c.(*SyntaxNode); ok {
			child.Preorder(visit)
		}
	}
}

// Text reproduces the node's source text exactly, trivia included.
// For a root node this is the original input, byte for byte.
func (n *SyntaxNode) Text() string {
	var sb strings.Builder
	n.writeText(&sb, true)
	return sb.String()
}

// TextNoTrivia prints the node's tokens without whitespace or
// comments. This is the lossy rendition of the same tree.
func (n *SyntaxNode) TextNoTrivia() string {
	var sb strings.Builder
	n.writeText(&sb, false)
	return sb.String()
}

func (n *SyntaxNode) writeText(sb *strings.Builder, withTrivia bool) {
	for _, c := range n.children {
		c.writeText(sb, withTrivia)
	}
}

// ContainsError reports whether the subtree holds any error node.
func (n *SyntaxNode) ContainsError() bool {
	found := false
	n.Preorder(func(node *SyntaxNode) bool {
		if node.kind == KindError {
			found = true
		}
		return !found
	})
	return found
}

// String renders the node structure for debugging, one element per
// line, indented by depth.
func (n *SyntaxNode) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *SyntaxNode) dump(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(n.kind.String())
	sb.WriteString(" [")
	sb.WriteString(strconv.Itoa(n.span.Start))
	sb.WriteString("..")
	sb.WriteString(strconv.Itoa(n.span.End))
	sb.WriteString("]\n")
	for _, c := range n.children {
		switch child := c.(type) {
		case *SyntaxNode:
			child.dump(sb, indent+1)
		case *SyntaxToken:
			for i := 0; i < indent+1; i++ {
				sb.WriteString("  ")
			}
			sb.WriteString(child.Kind().String())
			sb.WriteString(" ")
			sb.WriteString(strconv.Quote(child.Text()))
			sb.WriteString("\n")
		}
	}
}

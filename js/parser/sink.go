package parser

import "fmt"

// TreeSink replays an event stream and a token list into an immutable
// syntax tree. It knows nothing about the grammar: it is the single
// place where the event nesting invariant is checked, and a malformed
// stream here is a parser bug, never a consequence of bad input.
type TreeSink struct {
	tokens []Token
	next   int
	stack  []*nodeBuilder
	root   *SyntaxNode
}

type nodeBuilder struct {
	kind     SyntaxKind
	children []SyntaxElement
}

func NewTreeSink(tokens []Token) *TreeSink {
	return &TreeSink{tokens: tokens}
}

// Build replays the events and returns the tree root plus the
// diagnostics carried by error events.
func (s *TreeSink) Build(events []Event) (*SyntaxNode, []Diagnostic) {
	var diags []Diagnostic
	consumed := make([]bool, len(events))

	for i, ev := range events {
		switch ev.Kind {
		case EventStart:
			if consumed[i] {
				continue
			}
			if ev.Node == KindTombstone && ev.Forward == 0 {
				continue
			}
			// Forward parents were emitted later but must open first:
			// collect the chain inner to outer, then open outermost
			// down.
			var kinds []SyntaxKind
			idx := i
			for {
				e := events[idx]
				consumed[idx] = true
				if e.Node != KindTombstone {
					kinds = append(kinds, e.Node)
				}
				if e.Forward == 0 {
					break
				}
				idx = e.Forward - 1
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				s.startNode(kinds[j])
			}
		case EventToken:
			s.token()
		case EventFinish:
			s.finishNode()
		case EventError:
			if ev.Diag != nil {
				diags = append(diags, *ev.Diag)
			}
		}
	}

	if len(s.stack) != 0 {
		panic(fmt.Sprintf("parser internal: %d unterminated start events", len(s.stack)))
	}
	if s.root == nil {
		panic("parser internal: event stream produced no root node")
	}
	if s.next != len(s.tokens) {
		panic(fmt.Sprintf("parser internal: %d of %d tokens attached to tree", s.next, len(s.tokens)))
	}
	return s.root, diags
}

func (s *TreeSink) startNode(kind SyntaxKind) {
	s.stack = append(s.stack, &nodeBuilder{kind: kind})
}

func (s *TreeSink) token() {
	if len(s.stack) == 0 {
		panic("parser internal: token event outside any node")
	}
	if s.next >= len(s.tokens) {
		panic("parser internal: token event past end of token list")
	}
	tok := s.tokens[s.next]
	s.next++
	top := s.stack[len(s.stack)-1]
	top.children = append(top.children, &SyntaxToken{Token: tok})
}

func (s *TreeSink) finishNode() {
	if len(s.stack) == 0 {
		panic("parser internal: finish event without matching start")
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	node := &SyntaxNode{kind: top.kind, children: top.children}
	node.span = childrenSpan(top.children)
	for _, c := range top.children {
		c.setParent(node)
	}

	if len(s.stack) == 0 {
		if s.root != nil {
			panic("parser internal: event stream produced two roots")
		}
		// File-final trivia rides on the EOF token; attach it to the
		// root so the tree covers every input byte.
		if s.next < len(s.tokens) && s.tokens[s.next].Kind == TokenEOF {
			eof := &SyntaxToken{Token: s.tokens[s.next]}
			s.next++
			eof.setParent(node)
			node.children = append(node.children, eof)
			node.span = childrenSpan(node.children)
		}
		s.root = node
		return
	}
	parent := s.stack[len(s.stack)-1]
	parent.children = append(parent.children, node)
}

func childrenSpan(children []SyntaxElement) Span {
	if len(children) == 0 {
		return Span{}
	}
	span := children[0].Span()
	for _, c := range children[1:] {
		span = span.Cover(c.Span())
	}
	return span
}

package parser

import (
	"strings"
	"testing"
)

func tok(kind TokenKind, text string, start int) Token {
	return Token{Kind: kind, Span: Span{Start: start, End: start + len(text)}, Literal: text}
}

func TestSinkBalancedEvents(t *testing.T) {
	tokens := []Token{
		tok(TokenIdent, "a", 0),
		tok(TokenEOF, "", 1),
	}
	events := []Event{
		{Kind: EventStart, Node: KindScript},
		{Kind: EventToken},
		{Kind: EventFinish},
	}
	root, diags := NewTreeSink(tokens).Build(events)
	if root.Kind() != KindScript {
		t.Errorf("root kind = %v", root.Kind())
	}
	if len(diags) != 0 {
		t.Errorf("diags = %v", diags)
	}
	if root.Text() != "a" {
		t.Errorf("text = %q", root.Text())
	}
}

func TestSinkForwardParents(t *testing.T) {
	// The event layout a parser produces for `1+2` after Precede: the
	// literal's start event is forward-linked to the later binary start.
	tokens := []Token{
		tok(TokenNumber, "1", 0),
		tok(TokenPlus, "+", 1),
		tok(TokenNumber, "2", 2),
		tok(TokenEOF, "", 3),
	}
	events := []Event{
		{Kind: EventStart, Node: KindScript},              // 0
		{Kind: EventStart, Node: KindLiteral, Forward: 5}, // 1 -> 4
		{Kind: EventToken},                                // 2: 1
		{Kind: EventFinish},                               // 3
		{Kind: EventStart, Node: KindBinaryExpr},          // 4
		{Kind: EventToken},                                // 5: +
		{Kind: EventStart, Node: KindLiteral},             // 6
		{Kind: EventToken},                                // 7: 2
		{Kind: EventFinish},                               // 8
		{Kind: EventFinish},                               // 9: binary
		{Kind: EventFinish},                               // 10: script
	}
	root, _ := NewTreeSink(tokens).Build(events)

	binary := root.NthChildNode(0)
	if binary == nil || binary.Kind() != KindBinaryExpr {
		t.Fatalf("forward parent did not wrap the literal:\n%s", root)
	}
	if got := len(binary.ChildNodes()); got != 2 {
		t.Fatalf("binary children = %d, want 2:\n%s", got, root)
	}
	if binary.Text() != "1+2" {
		t.Errorf("binary text = %q", binary.Text())
	}
}

func TestSinkTombstonesSkipped(t *testing.T) {
	tokens := []Token{
		tok(TokenIdent, "a", 0),
		tok(TokenEOF, "", 1),
	}
	events := []Event{
		{Kind: EventStart, Node: KindScript},
		{Kind: EventStart, Node: KindTombstone}, // abandoned marker
		{Kind: EventToken},
		{Kind: EventFinish},
	}
	root, _ := NewTreeSink(tokens).Build(events)
	if got := len(root.ChildNodes()); got != 0 {
		t.Errorf("tombstone produced a node:\n%s", root)
	}
}

func TestSinkErrorEventsCollectDiagnostics(t *testing.T) {
	tokens := []Token{tok(TokenEOF, "", 0)}
	events := []Event{
		{Kind: EventStart, Node: KindScript},
		{Kind: EventError, Diag: &Diagnostic{Message: "boom", Severity: SeverityError}},
		{Kind: EventFinish},
	}
	_, diags := NewTreeSink(tokens).Build(events)
	if len(diags) != 1 || diags[0].Message != "boom" {
		t.Errorf("diags = %v", diags)
	}
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, substr) {
			t.Fatalf("panic = %v, want substring %q", r, substr)
		}
	}()
	fn()
}

func TestSinkPanicsOnMalformedStream(t *testing.T) {
	tokens := []Token{tok(TokenEOF, "", 0)}

	expectPanic(t, "unterminated", func() {
		NewTreeSink(tokens).Build([]Event{
			{Kind: EventStart, Node: KindScript},
		})
	})

	expectPanic(t, "without matching start", func() {
		NewTreeSink(tokens).Build([]Event{
			{Kind: EventFinish},
		})
	})

	expectPanic(t, "outside any node", func() {
		NewTreeSink(tokens).Build([]Event{
			{Kind: EventToken},
		})
	})

	expectPanic(t, "no root", func() {
		NewTreeSink(tokens).Build(nil)
	})
}

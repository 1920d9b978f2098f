package parser

import "testing"

func TestTokenSourceTrailingTrivia(t *testing.T) {
	s := NewTokenSource([]byte("a /* c */ b"), TriviaSameLineTrailing)

	a := s.Bump()
	if a.Kind != TokenIdent || a.Literal != "a" {
		t.Fatalf("first token = %v %q", a.Kind, a.Literal)
	}
	// No line break between the comment and a, so everything trails a.
	if len(a.Trailing) != 3 {
		t.Fatalf("trailing = %d pieces, want 3", len(a.Trailing))
	}
	if a.Trailing[1].Kind != TriviaBlockComment {
		t.Errorf("trailing[1] = %v, want BlockComment", a.Trailing[1].Kind)
	}

	b := s.Current()
	if len(b.Leading) != 0 {
		t.Errorf("b leading = %d pieces, want 0", len(b.Leading))
	}
}

func TestTokenSourceLeadingAfterLineBreak(t *testing.T) {
	s := NewTokenSource([]byte("a // c\nb"), TriviaSameLineTrailing)

	a := s.Bump()
	// The comment sits on a's line; the newline and beyond lead b.
	if len(a.Trailing) != 2 {
		t.Fatalf("a trailing = %d pieces, want 2", len(a.Trailing))
	}
	if a.Trailing[1].Kind != TriviaLineComment {
		t.Errorf("a trailing[1] = %v, want LineComment", a.Trailing[1].Kind)
	}

	if !s.HasPrecedingLineBreak() {
		t.Error("expected a preceding line break before b")
	}
	b := s.Current()
	if len(b.Leading) != 1 || !b.Leading[0].ContainsNewline() {
		t.Errorf("b leading = %v", b.Leading)
	}
}

func TestTokenSourceAllLeadingPolicy(t *testing.T) {
	s := NewTokenSource([]byte("a /* c */ b"), TriviaAllLeading)

	a := s.Bump()
	if len(a.Trailing) != 0 {
		t.Errorf("a trailing = %d pieces, want 0", len(a.Trailing))
	}
	b := s.Current()
	if len(b.Leading) != 3 {
		t.Errorf("b leading = %d pieces, want 3", len(b.Leading))
	}
}

func TestTokenSourceFileLeadingTrivia(t *testing.T) {
	s := NewTokenSource([]byte("  // head\n  a"), TriviaSameLineTrailing)
	a := s.Current()
	if a.Kind != TokenIdent {
		t.Fatalf("kind = %v", a.Kind)
	}
	// Nothing precedes the first token, so the file header leads it.
	if len(a.Leading) != 3 {
		t.Errorf("leading = %d pieces, want 3", len(a.Leading))
	}
}

func TestTokenSourceSlashHeuristic(t *testing.T) {
	// After an identifier a slash divides.
	s := NewTokenSource([]byte("a/b"), TriviaSameLineTrailing)
	s.Bump()
	if s.CurrentKind() != TokenSlash {
		t.Errorf("after ident: %v, want Slash", s.CurrentKind())
	}

	// After an operator it starts a regex.
	s = NewTokenSource([]byte("a=/x/i"), TriviaSameLineTrailing)
	s.Bump()
	s.Bump()
	if s.CurrentKind() != TokenRegex {
		t.Errorf("after '=': %v, want Regex", s.CurrentKind())
	}
}

func TestTokenSourceReLex(t *testing.T) {
	// A closing brace puts the heuristic in operator position, so the
	// slash lexes as division until the parser relexes it.
	s := NewTokenSource([]byte("}/x/"), TriviaSameLineTrailing)
	s.Bump()
	if s.CurrentKind() != TokenSlash {
		t.Fatalf("before relex: %v, want Slash", s.CurrentKind())
	}
	kind := s.ReLex(LexRegex)
	if kind != TokenRegex {
		t.Fatalf("after relex: %v, want Regex", kind)
	}
	if s.Current().Literal != "/x/" {
		t.Errorf("literal = %q", s.Current().Literal)
	}
}

func TestTokenSourceFinishEOF(t *testing.T) {
	s := NewTokenSource([]byte("a // tail"), TriviaSameLineTrailing)
	s.Bump()
	s.FinishEOF()

	finished := s.Finished()
	if len(finished) != 2 {
		t.Fatalf("finished = %d tokens, want 2", len(finished))
	}
	eof := finished[1]
	if eof.Kind != TokenEOF {
		t.Fatalf("last finished token = %v, want EOF", eof.Kind)
	}
	// File-final trivia rides on the EOF token.
	total := ""
	for _, tr := range eof.Leading {
		total += tr.Text
	}
	if total != " // tail" {
		t.Errorf("eof leading text = %q", total)
	}
}

func TestTokenSourceNthLookahead(t *testing.T) {
	s := NewTokenSource([]byte("a b c"), TriviaSameLineTrailing)
	if s.Nth(0) != TokenIdent || s.Nth(1) != TokenIdent || s.Nth(2) != TokenIdent {
		t.Errorf("lookahead kinds: %v %v %v", s.Nth(0), s.Nth(1), s.Nth(2))
	}
	if s.Nth(3) != TokenEOF {
		t.Errorf("Nth(3) = %v, want EOF", s.Nth(3))
	}
}

package parser

import "testing"

func TestReplaceKeepsSurroundingTrivia(t *testing.T) {
	result := parseNoErrors(t, "a /* keep */ + b")
	ident := firstOfKind(result.Root, KindIdentifier)
	if ident == nil || ident.TextNoTrivia() != "a" {
		t.Fatalf("target = %v", ident)
	}

	replacement := MakeNode(KindIdentifier, MakeToken(TokenIdent, "z"))
	newRoot := Replace(result.Root, ident, replacement)

	if got := newRoot.Text(); got != "z /* keep */ + b" {
		t.Errorf("rewritten text = %q", got)
	}
}

func TestReplaceDiscardTrivia(t *testing.T) {
	result := parseNoErrors(t, "a /* gone */ + b")
	ident := firstOfKind(result.Root, KindIdentifier)

	replacement := MakeNode(KindIdentifier, MakeToken(TokenIdent, "z"))
	newRoot := ReplaceDiscardTrivia(result.Root, ident, replacement)

	if got := newRoot.Text(); got != "z+ b" {
		t.Errorf("rewritten text = %q", got)
	}
}

func TestReplaceLeavesOriginalIntact(t *testing.T) {
	src := "a + b;\ny;\n"
	result := parseNoErrors(t, src)
	ident := firstOfKind(result.Root, KindIdentifier)

	replacement := MakeNode(KindIdentifier, MakeToken(TokenIdent, "z"))
	newRoot := Replace(result.Root, ident, replacement)

	if got := result.Root.Text(); got != src {
		t.Errorf("original tree changed: %q", got)
	}
	if got := newRoot.Text(); got != "z + b;\ny;\n" {
		t.Errorf("rewritten text = %q", got)
	}
}

func TestReplaceSharesUntouchedSubtrees(t *testing.T) {
	result := parseNoErrors(t, "a + b;\ny;\n")
	ident := firstOfKind(result.Root, KindIdentifier)

	newRoot := Replace(result.Root, ident,
		MakeNode(KindIdentifier, MakeToken(TokenIdent, "z")))

	oldSecond := result.Root.NthChildNode(1)
	newSecond := newRoot.NthChildNode(1)
	if oldSecond == nil || oldSecond != newSecond {
		t.Error("untouched statement was copied instead of shared")
	}
}

func TestReplaceOutsideRootIsNoop(t *testing.T) {
	a := parseNoErrors(t, "a;")
	b := parseNoErrors(t, "b;")
	foreign := firstOfKind(b.Root, KindIdentifier)

	newRoot := Replace(a.Root, foreign, MakeToken(TokenIdent, "z"))
	if newRoot != a.Root {
		t.Error("replacing a non-descendant should return the root unchanged")
	}
}

func TestParenthesizeMovesEdgeTrivia(t *testing.T) {
	result := parseNoErrors(t, "!x in y")
	unary := firstOfKind(result.Root, KindUnaryExpr)
	if unary == nil {
		t.Fatalf("no unary expression:\n%s", result.Root)
	}

	newRoot := Replace(result.Root, unary, Parenthesize(unary))
	if got := newRoot.Text(); got != "(!x) in y" {
		t.Errorf("rewritten text = %q", got)
	}
}

func TestMakeUnary(t *testing.T) {
	node := MakeUnary(MakeToken(TokenNot, "!"), MakeNode(KindIdentifier, MakeToken(TokenIdent, "ok")))
	if node.Kind() != KindUnaryExpr {
		t.Errorf("kind = %v", node.Kind())
	}
	if node.Text() != "!ok" {
		t.Errorf("text = %q", node.Text())
	}
}

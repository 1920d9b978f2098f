package parser

import (
	"math/rand"
	"strings"
	"testing"
)

func parseNoErrors(t *testing.T, src string, opts ...Option) *ParseResult {
	t.Helper()
	result := Parse([]byte(src), opts...)
	if result.HasErrors() {
		t.Fatalf("unexpected errors for %q:\n%v\ntree:\n%s", src, result.Diagnostics, result.Root)
	}
	return result
}

// firstOfKind finds the first node of the given kind in document order.
func firstOfKind(root *SyntaxNode, kind SyntaxKind) *SyntaxNode {
	var found *SyntaxNode
	root.Preorder(func(n *SyntaxNode) bool {
		if found == nil && n.Kind() == kind {
			found = n
		}
		return found == nil
	})
	return found
}

func TestParseMultiplicationBindsTighter(t *testing.T) {
	result := parseNoErrors(t, "1+2*3")
	add := firstOfKind(result.Root, KindBinaryExpr)
	if add == nil {
		t.Fatal("no binary expression")
	}
	if op := add.FirstTokenOfKind(TokenPlus); op == nil {
		t.Fatalf("outer operator is not '+':\n%s", add)
	}
	inner := add.NthChildNode(1)
	if inner == nil || inner.Kind() != KindBinaryExpr {
		t.Fatalf("right operand is not a nested binary expression:\n%s", add)
	}
	if op := inner.FirstTokenOfKind(TokenStar); op == nil {
		t.Errorf("inner operator is not '*':\n%s", inner)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	result := parseNoErrors(t, "1-2-3")
	outer := firstOfKind(result.Root, KindBinaryExpr)
	left := outer.NthChildNode(0)
	if left == nil || left.Kind() != KindBinaryExpr {
		t.Fatalf("left operand should be the nested subtraction:\n%s", outer)
	}
}

func TestParseExponentRightAssociative(t *testing.T) {
	result := parseNoErrors(t, "a**b**c")
	outer := firstOfKind(result.Root, KindBinaryExpr)
	right := outer.NthChildNode(1)
	if right == nil || right.Kind() != KindBinaryExpr {
		t.Fatalf("right operand should be the nested exponent:\n%s", outer)
	}
}

func TestParseOperatorNodeKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind SyntaxKind
	}{
		{"a && b", KindLogicalExpr},
		{"a || b", KindLogicalExpr},
		{"a ?? b", KindLogicalExpr},
		{"a in b", KindInExpr},
		{"a instanceof b", KindInstanceofExpr},
		{"a + b", KindBinaryExpr},
		{"a = b", KindAssignExpr},
		{"a ? b : c", KindTernaryExpr},
		{"a, b", KindSequenceExpr},
		{"!a", KindUnaryExpr},
		{"a++", KindUpdateExpr},
		{"--a", KindUpdateExpr},
	}
	for _, tt := range tests {
		result := parseNoErrors(t, tt.src)
		if firstOfKind(result.Root, tt.kind) == nil {
			t.Errorf("%q: no %v node:\n%s", tt.src, tt.kind, result.Root)
		}
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	result := parseNoErrors(t, "a = b = c")
	outer := firstOfKind(result.Root, KindAssignExpr)
	right := outer.NthChildNode(1)
	if right == nil || right.Kind() != KindAssignExpr {
		t.Fatalf("right operand should be the nested assignment:\n%s", outer)
	}
}

func TestParseCallMemberChain(t *testing.T) {
	result := parseNoErrors(t, "a.b.c(1)[2]?.d")
	// Outermost is the optional member access; inside it the index,
	// call, and member accesses nest left to right.
	if firstOfKind(result.Root, KindMemberExpr) == nil {
		t.Error("no member expression")
	}
	if firstOfKind(result.Root, KindCallExpr) == nil {
		t.Error("no call expression")
	}
	if firstOfKind(result.Root, KindIndexExpr) == nil {
		t.Error("no index expression")
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		kind SyntaxKind
	}{
		{"[1, , 2, ...rest]", KindArrayExpr},
		{"x = {a: 1, b, [c]: 2, ...d, m() {}}", KindObjectExpr},
		{"(x)", KindParenExpr},
		{"x => x + 1", KindArrowFunction},
		{"(a, b) => a", KindArrowFunction},
		{"() => 1", KindArrowFunction},
		{"async x => x", KindArrowFunction},
		{"async (a) => a", KindArrowFunction},
		{"x = function f() {}", KindFunctionExpr},
		{"x = function () {}", KindFunctionExpr},
		{"x = async function () {}", KindFunctionExpr},
		{"x = class {}", KindClassExpr},
		{"new Foo(1)", KindNewExpr},
		{"new Foo", KindNewExpr},
		{"f`tag`", KindTaggedTemplate},
		{"`plain`", KindTemplate},
		{"`a${x}b`", KindTemplate},
		{"typeof x", KindUnaryExpr},
	}
	for _, tt := range tests {
		result := parseNoErrors(t, tt.src)
		if firstOfKind(result.Root, tt.kind) == nil {
			t.Errorf("%q: no %v node:\n%s", tt.src, tt.kind, result.Root)
		}
	}
}

func TestParseTemplateSubstitution(t *testing.T) {
	result := parseNoErrors(t, "`a${x + 1}b${y}c`")
	template := firstOfKind(result.Root, KindTemplate)
	if template == nil {
		t.Fatal("no template node")
	}
	substs := template.ChildrenOfKind(KindTemplateSubst)
	if len(substs) != 2 {
		t.Fatalf("substitutions = %d, want 2:\n%s", len(substs), template)
	}
}

func TestParseRegexInExpressionPosition(t *testing.T) {
	result := parseNoErrors(t, "let r = /ab+c/g;")
	regex := firstOfKind(result.Root, KindRegexLiteral)
	if regex == nil {
		t.Fatalf("no regex literal:\n%s", result.Root)
	}
	if got := regex.Text(); got != "/ab+c/g" {
		t.Errorf("regex text = %q", got)
	}

	// Same slash after a value is division.
	result = parseNoErrors(t, "let y = a / b;")
	if firstOfKind(result.Root, KindRegexLiteral) != nil {
		t.Error("division parsed as regex")
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		src  string
		kind SyntaxKind
	}{
		{"if (a) b; else c;", KindIfStmt},
		{"for (let i = 0; i < 10; i++) {}", KindForStmt},
		{"for (;;) {}", KindForStmt},
		{"for (const k in obj) {}", KindForInStmt},
		{"for (const v of list) {}", KindForOfStmt},
		{"while (a) {}", KindWhileStmt},
		{"do { a; } while (b)", KindDoStmt},
		{"switch (a) { case 1: b; break; default: c; }", KindSwitchStmt},
		{"try { a; } catch (e) { b; } finally { c; }", KindTryStmt},
		{"try { a; } catch { b; }", KindCatchClause},
		{"throw new Error('x');", KindThrowStmt},
		{"function f() { return 1; }", KindReturnStmt},
		{"outer: for (;;) { break outer; }", KindLabeledStmt},
		{"for (;;) { continue; }", KindContinueStmt},
		{"debugger;", KindDebuggerStmt},
		{";", KindEmptyStmt},
		{"var a = 1, b;", KindVarDeclarator},
		{"const {x, y = 1} = obj;", KindVarDecl},
		{"let [a, , b] = arr;", KindVarDecl},
	}
	for _, tt := range tests {
		result := parseNoErrors(t, tt.src)
		if firstOfKind(result.Root, tt.kind) == nil {
			t.Errorf("%q: no %v node:\n%s", tt.src, tt.kind, result.Root)
		}
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		src  string
		kind SyntaxKind
	}{
		{"function f(a, b = 1, ...rest) {}", KindFunctionDecl},
		{"async function g() { await h(); }", KindAwaitExpr},
		{"function* gen() { yield 1; }", KindYieldExpr},
		{"class A extends B { constructor() {} get x() {} static m() {} #f = 1; }", KindClassDecl},
		{"class A { static { init(); } }", KindClassBody},
	}
	for _, tt := range tests {
		result := parseNoErrors(t, tt.src)
		if firstOfKind(result.Root, tt.kind) == nil {
			t.Errorf("%q: no %v node:\n%s", tt.src, tt.kind, result.Root)
		}
	}
}

func TestParseModules(t *testing.T) {
	tests := []struct {
		src  string
		kind SyntaxKind
	}{
		{`import "side-effect";`, KindImportDecl},
		{`import def from "mod";`, KindImportDecl},
		{`import * as ns from "mod";`, KindNamespaceImport},
		{`import def, {a, b as c} from "mod";`, KindNamedImports},
		{`export default 42;`, KindExportDecl},
		{`export {a, b as c};`, KindNamedExports},
		{`export * from "mod";`, KindExportDecl},
		{`export const x = 1;`, KindVarDecl},
		{`export function f() {}`, KindFunctionDecl},
	}
	for _, tt := range tests {
		result := parseNoErrors(t, tt.src, WithSourceType(SourceModule))
		if result.Root.Kind() != KindModule {
			t.Errorf("%q: root = %v, want Module", tt.src, result.Root.Kind())
		}
		if firstOfKind(result.Root, tt.kind) == nil {
			t.Errorf("%q: no %v node:\n%s", tt.src, tt.kind, result.Root)
		}
	}
}

func TestParseImportInScriptIsError(t *testing.T) {
	result := Parse([]byte(`import "mod";`))
	if !result.HasErrors() {
		t.Error("import in a script should produce an error")
	}
	// The declaration still parses so the tree stays useful.
	if firstOfKind(result.Root, KindImportDecl) == nil {
		t.Error("import declaration missing from tree")
	}
}

func TestParseAutomaticSemicolonInsertion(t *testing.T) {
	sources := []string{
		"a = 1\nb = 2",
		"let x = 1\nlet y = 2",
		"a\n++b", // ++ cannot attach across the line break
	}
	for _, src := range sources {
		parseNoErrors(t, src)
	}

	// Without a line break the missing semicolon is an error.
	result := Parse([]byte("a = 1 b = 2"))
	if !result.HasErrors() {
		t.Error("missing semicolon on one line should produce an error")
	}
}

func TestParsePostfixRequiresSameLine(t *testing.T) {
	result := parseNoErrors(t, "a\n++b")
	// Two statements: `a` and the prefix update `++b`.
	if got := len(result.Root.ChildNodes()); got != 2 {
		t.Fatalf("statements = %d, want 2:\n%s", got, result.Root)
	}
	update := firstOfKind(result.Root, KindUpdateExpr)
	if update == nil {
		t.Fatal("no update expression")
	}
	if update.FirstToken().Kind() != TokenIncrement {
		t.Errorf("update should be prefix:\n%s", update)
	}
}

func TestParseJSX(t *testing.T) {
	src := `let el = <div className="x" onClick={f}>hi {name}<br/></div>;`
	result := parseNoErrors(t, src, WithJSX())
	element := firstOfKind(result.Root, KindJSXElement)
	if element == nil {
		t.Fatalf("no JSX element:\n%s", result.Root)
	}
	if firstOfKind(element, KindJSXAttribute) == nil {
		t.Error("no JSX attribute")
	}
	if firstOfKind(element, KindJSXExprContainer) == nil {
		t.Error("no JSX expression container")
	}
	if firstOfKind(element, KindJSXClosingElement) == nil {
		t.Error("no JSX closing element")
	}
	if result.Root.Text() != src {
		t.Errorf("roundtrip:\n got %q\nwant %q", result.Root.Text(), src)
	}

	// Without the option, JSX is a plain comparison chain or an error,
	// never a JSX node.
	result = Parse([]byte(src))
	if firstOfKind(result.Root, KindJSXElement) != nil {
		t.Error("JSX parsed without the option")
	}
}

func TestParseRecoveryTruncatedFunction(t *testing.T) {
	result := Parse([]byte("function ("))
	if !result.HasErrors() {
		t.Error("truncated function should produce errors")
	}
	if got := result.Root.Text(); got != "function (" {
		t.Errorf("roundtrip = %q", got)
	}
}

func TestParseRecoveryStrayBrace(t *testing.T) {
	result := Parse([]byte("}\nlet x = 1;"))
	if !result.HasErrors() {
		t.Error("stray brace should produce an error")
	}
	// The brace lands in an error node and parsing continues.
	if firstOfKind(result.Root, KindError) == nil {
		t.Error("no error node")
	}
	if firstOfKind(result.Root, KindVarDecl) == nil {
		t.Errorf("declaration after the stray brace was lost:\n%s", result.Root)
	}
	if got := result.Root.Text(); got != "}\nlet x = 1;" {
		t.Errorf("roundtrip = %q", got)
	}
}

func TestParseRecoveryKeepsFollowingStatements(t *testing.T) {
	result := Parse([]byte("let x = ;\nconst ok = 1;"))
	if !result.HasErrors() {
		t.Error("malformed declaration should produce errors")
	}
	decls := result.Root.ChildNodes()
	if len(decls) < 2 {
		t.Fatalf("following statement was swallowed:\n%s", result.Root)
	}
}

func TestParseRoundtrip(t *testing.T) {
	sources := []string{
		"",
		"  \n\t",
		"// only a comment",
		"let x = 1; // trailing\n/* leading */ let y = 2;\n",
		"function f(a, b) {\n  return a + b; // sum\n}\n",
		"const s = `a${x}b${y}c`;\n",
		"if (a) { b(); } else { c(); }\n",
		"class A { m() { return this.#x; } }\n",
		"x = y ?? z?.w ?? [1, 2,, 3];\n",
		"for (const [k, v] of entries) console.log(k, v)\n",
	}
	for _, src := range sources {
		result := Parse([]byte(src))
		if got := result.Root.Text(); got != src {
			t.Errorf("roundtrip mismatch:\n got %q\nwant %q", got, src)
		}
	}
}

func TestParseTotalOnArbitraryInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte("abc(){}[];,.`'\"\\/*+-<>=!&|?:#123 \n\t$_%^~@")
	for i := 0; i < 500; i++ {
		n := rng.Intn(80)
		buf := make([]byte, n)
		for j := range buf {
			if rng.Intn(8) == 0 {
				buf[j] = byte(rng.Intn(256))
			} else {
				buf[j] = alphabet[rng.Intn(len(alphabet))]
			}
		}
		result := Parse(buf)
		if got := result.Root.Text(); got != string(buf) {
			t.Fatalf("roundtrip mismatch for %q: got %q", buf, got)
		}
	}
}

func TestParseDeepNestingDoesNotOverflow(t *testing.T) {
	src := strings.Repeat("(", 2000) + "x" + strings.Repeat(")", 2000)
	result := Parse([]byte(src))
	if !result.HasErrors() {
		t.Error("expected a nesting-depth error")
	}
	if got := result.Root.Text(); got != src {
		t.Error("deeply nested input did not roundtrip")
	}
}

func TestParseSwitchRecoversAtCase(t *testing.T) {
	src := "switch (a) { ]] case 1: b; default: c; }"
	result := Parse([]byte(src))
	if !result.HasErrors() {
		t.Fatal("expected a diagnostic for the stray tokens")
	}
	if got := result.Root.Text(); got != src {
		t.Errorf("recovered switch did not roundtrip: %q", got)
	}
	sw := firstOfKind(result.Root, KindSwitchStmt)
	if sw == nil {
		t.Fatalf("no switch statement:\n%s", result.Root)
	}
	if got := len(sw.ChildrenOfKind(KindSwitchCase)); got != 2 {
		t.Errorf("cases after recovery = %d, want 2:\n%s", got, result.Root)
	}
}

func TestParseDeepNewChainDoesNotOverflow(t *testing.T) {
	src := strings.Repeat("new ", 5000) + "x"
	result := Parse([]byte(src))
	if !result.HasErrors() {
		t.Error("expected a nesting-depth error")
	}
	if got := result.Root.Text(); got != src {
		t.Error("deep new chain did not roundtrip")
	}
}

func TestParseDeepExponentChainDoesNotOverflow(t *testing.T) {
	src := "a" + strings.Repeat(" ** a", 5000)
	result := Parse([]byte(src))
	if !result.HasErrors() {
		t.Error("expected a nesting-depth error")
	}
	if got := result.Root.Text(); got != src {
		t.Error("deep exponent chain did not roundtrip")
	}
}

func TestParseDeepJSXNestingDoesNotOverflow(t *testing.T) {
	src := strings.Repeat("<a>", 5000)
	result := Parse([]byte(src), WithJSX())
	if !result.HasErrors() {
		t.Error("expected a nesting-depth error")
	}
	if got := result.Root.Text(); got != src {
		t.Error("deep JSX nesting did not roundtrip")
	}
}

func TestParseExpressionEntryPoint(t *testing.T) {
	result := ParseExpression([]byte("1 + 2"))
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Diagnostics)
	}
	if firstOfKind(result.Root, KindBinaryExpr) == nil {
		t.Error("no binary expression")
	}

	// Trailing garbage is preserved and diagnosed.
	result = ParseExpression([]byte("1 + 2 garbage"))
	if !result.HasErrors() {
		t.Error("trailing input should produce an error")
	}
	if got := result.Root.Text(); got != "1 + 2 garbage" {
		t.Errorf("roundtrip = %q", got)
	}
}

func TestParseTriviaPolicyOption(t *testing.T) {
	src := "a /* c */ b"
	result := Parse([]byte(src), WithTriviaPolicy(TriviaAllLeading))
	if got := result.Root.Text(); got != src {
		t.Errorf("roundtrip = %q", got)
	}
}

func TestParseResultLineIndex(t *testing.T) {
	result := Parse([]byte("let x = 1;\nlet y = oops oops;"))
	if !result.HasErrors() {
		t.Fatal("expected an error on line 2")
	}
	var errDiag *Diagnostic
	for i, d := range result.Diagnostics {
		if d.Severity == SeverityError {
			errDiag = &result.Diagnostics[i]
			break
		}
	}
	pos := result.Lines.Position(errDiag.Span.Start)
	if pos.Line != 2 {
		t.Errorf("error line = %d, want 2 (%v)", pos.Line, *errDiag)
	}
}

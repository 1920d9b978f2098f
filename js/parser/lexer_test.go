package parser

import "testing"

func lexAll(t *testing.T, input string, ctx LexContext) []Token {
	t.Helper()
	lexer := NewLexer([]byte(input))
	var tokens []Token
	for {
		tok := lexer.Next(ctx)
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{"let x = 1;", []TokenKind{TokenLet, TokenWhitespace, TokenIdent, TokenWhitespace, TokenAssign, TokenWhitespace, TokenNumber, TokenSemicolon}},
		{"a===b", []TokenKind{TokenIdent, TokenStrictEQ, TokenIdent}},
		{"a??=b", []TokenKind{TokenIdent, TokenNullishAssign, TokenIdent}},
		{"x?.y", []TokenKind{TokenIdent, TokenQuestionDot, TokenIdent}},
		{"a?b:c", []TokenKind{TokenIdent, TokenQuestion, TokenIdent, TokenColon, TokenIdent}},
		{"...rest", []TokenKind{TokenEllipsis, TokenIdent}},
		{"x>>>=y", []TokenKind{TokenIdent, TokenUShrAssign, TokenIdent}},
		{"a**b", []TokenKind{TokenIdent, TokenStarStar, TokenIdent}},
		{"#priv", []TokenKind{TokenPrivateName}},
		{"x=>y", []TokenKind{TokenIdent, TokenArrow, TokenIdent}},
	}
	for _, tt := range tests {
		tokens := lexAll(t, tt.input, LexDiv)
		got := kindsOf(tokens)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []string{
		"0", "42", "3.14", ".5", "1e10", "1E-3", "0xFF", "0b1010", "0o777",
		"1_000_000", "123n", "0xDEADn",
	}
	for _, input := range tests {
		tokens := lexAll(t, input, LexDiv)
		if len(tokens) != 1 || tokens[0].Kind != TokenNumber {
			t.Errorf("%q: got %v, want one Number token", input, kindsOf(tokens))
			continue
		}
		if tokens[0].Literal != input {
			t.Errorf("%q: literal = %q", input, tokens[0].Literal)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"hello"`, `"hello"`},
		{`'it\'s'`, `'it\'s'`},
		{`"tab\t"`, `"tab\t"`},
	}
	for _, tt := range tests {
		tokens := lexAll(t, tt.input, LexDiv)
		if len(tokens) != 1 || tokens[0].Kind != TokenString {
			t.Fatalf("%q: got %v, want one String token", tt.input, kindsOf(tokens))
		}
		if tokens[0].Literal != tt.literal {
			t.Errorf("%q: literal = %q, want %q", tt.input, tokens[0].Literal, tt.literal)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lexer := NewLexer([]byte(`"oops`))
	tok := lexer.Next(LexDiv)
	if tok.Kind != TokenString {
		t.Fatalf("kind = %v, want String", tok.Kind)
	}
	if len(lexer.Diagnostics()) != 1 {
		t.Errorf("diagnostics = %d, want 1", len(lexer.Diagnostics()))
	}
}

func TestLexerRegexVsDivision(t *testing.T) {
	lexer := NewLexer([]byte("/ab[/]c/gi"))
	tok := lexer.Next(LexRegex)
	if tok.Kind != TokenRegex {
		t.Fatalf("kind = %v, want Regex", tok.Kind)
	}
	if tok.Literal != "/ab[/]c/gi" {
		t.Errorf("literal = %q", tok.Literal)
	}

	lexer = NewLexer([]byte("/x"))
	tok = lexer.Next(LexDiv)
	if tok.Kind != TokenSlash {
		t.Errorf("kind = %v, want Slash", tok.Kind)
	}
}

func TestLexerTemplateChunks(t *testing.T) {
	// Head chunk ends at the substitution opener.
	lexer := NewLexer([]byte("`a${"))
	tok := lexer.Next(LexDiv)
	if tok.Kind != TokenTemplateHead || tok.Literal != "`a${" {
		t.Errorf("head = %v %q", tok.Kind, tok.Literal)
	}

	// Continuation from the closing brace.
	lexer = NewLexer([]byte("}b${"))
	tok = lexer.Next(LexTemplateContinue)
	if tok.Kind != TokenTemplateMiddle || tok.Literal != "}b${" {
		t.Errorf("middle = %v %q", tok.Kind, tok.Literal)
	}

	lexer = NewLexer([]byte("}c`"))
	tok = lexer.Next(LexTemplateContinue)
	if tok.Kind != TokenTemplateTail || tok.Literal != "}c`" {
		t.Errorf("tail = %v %q", tok.Kind, tok.Literal)
	}

	lexer = NewLexer([]byte("`plain`"))
	tok = lexer.Next(LexDiv)
	if tok.Kind != TokenNoSubstTemplate {
		t.Errorf("no-subst = %v", tok.Kind)
	}
}

func TestLexerComments(t *testing.T) {
	tokens := lexAll(t, "a // line\nb /* block */ c", LexDiv)
	got := kindsOf(tokens)
	want := []TokenKind{
		TokenIdent, TokenWhitespace, TokenLineComment, TokenWhitespace,
		TokenIdent, TokenWhitespace, TokenBlockComment, TokenWhitespace, TokenIdent,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerJSXText(t *testing.T) {
	lexer := NewLexer([]byte("hello world<"))
	tok := lexer.Next(LexJSXText)
	if tok.Kind != TokenJSXText || tok.Literal != "hello world" {
		t.Errorf("got %v %q", tok.Kind, tok.Literal)
	}
	// At a stop byte the text context falls through to normal lexing.
	tok = lexer.Next(LexJSXText)
	if tok.Kind != TokenLT {
		t.Errorf("got %v, want <", tok.Kind)
	}
}

func TestLexerTotality(t *testing.T) {
	// Arbitrary bytes must come back as a complete token cover.
	inputs := []string{
		"\x00\x01\x02", "@@@", "\\", "日本語", "a\xffb", "`${", "/*",
	}
	for _, input := range inputs {
		lexer := NewLexer([]byte(input))
		covered := 0
		for {
			tok := lexer.Next(LexRegex)
			if tok.Kind == TokenEOF {
				break
			}
			if tok.Span.Len() == 0 {
				t.Fatalf("%q: zero-width token %v", input, tok.Kind)
			}
			covered += tok.Span.Len()
		}
		if covered != len(input) {
			t.Errorf("%q: covered %d of %d bytes", input, covered, len(input))
		}
	}
}

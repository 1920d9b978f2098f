package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// LexContext selects between ambiguous token interpretations at the
// current position. The lexer holds no grammar state of its own; the
// token source supplies a context on every call.
type LexContext int

const (
	// LexRegex is the expression position context: a leading slash
	// starts a regular expression literal.
	LexRegex LexContext = iota
	// LexDiv is the operator position context: a leading slash is a
	// division operator.
	LexDiv
	// LexTemplateContinue re-interprets a closing brace as the start of
	// a template middle or tail chunk. Used after the expression inside
	// a template substitution has been parsed.
	LexTemplateContinue
	// LexJSXText lexes raw JSX child text up to the next tag or
	// substitution brace.
	LexJSXText
)

type Lexer struct {
	input []byte
	pos   int
	diags []Diagnostic
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

// Diagnostics returns lex-level diagnostics recorded so far, such as
// unterminated strings or comments.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diags
}

// Rewind repositions the lexer so the next call to Next re-scans from
// offset, under whatever context the caller supplies. Diagnostics
// recorded at or past the offset belonged to the discarded
// interpretation and are dropped with it.
func (l *Lexer) Rewind(offset int) {
	l.pos = offset
	kept := l.diags[:0]
	for _, d := range l.diags {
		if d.Span.Start < offset {
			kept = append(kept, d)
		}
	}
	l.diags = kept
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) advanceN(n int) {
	l.pos += n
	if l.pos > len(l.input) {
		l.pos = len(l.input)
	}
}

func (l *Lexer) errorf(span Span, format string, args ...interface{}) {
	l.diags = append(l.diags, Diagnostic{
		Span:     span,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Next scans one token or trivia unit under the given context. Every
// input byte belongs to exactly one returned unit; unrecognized bytes
// come back as TokenUnknown so lexing is total.
func (l *Lexer) Next(ctx LexContext) Token {
	start := l.pos

	if l.pos >= len(l.input) {
		return l.token(TokenEOF, start)
	}

	if ctx == LexJSXText {
		return l.scanJSXText(start)
	}
	if ctx == LexTemplateContinue && l.peek() == '}' {
		return l.scanTemplateChunk(start, false)
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(start)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(start)
	}
	if isWhitespaceByte(ch) {
		return l.scanWhitespace(start)
	}
	if ch == '/' && ctx == LexRegex {
		return l.scanRegex(start)
	}
	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(start)
	}
	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start)
	}
	if ch == '"' || ch == '\'' {
		return l.scanString(start)
	}
	if ch == '`' {
		return l.scanTemplateChunk(start, true)
	}
	if ch == '#' && isIdentStart(l.peekN(1)) {
		l.advance()
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return l.token(TokenPrivateName, start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanWhitespace(start int) Token {
	for isWhitespaceByte(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start int) Token {
	l.advanceN(2)
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start int) Token {
	l.advanceN(2)
	terminated := false
	for l.peek() != 0 {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			terminated = true
			break
		}
		l.advance()
	}
	if !terminated {
		l.errorf(Span{Start: start, End: l.pos}, "unterminated block comment")
	}
	return l.token(TokenBlockComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start int) Token {
	if l.peek() == '0' {
		switch l.peekN(1) {
		case 'x', 'X':
			l.advanceN(2)
			for isHexDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
			l.eatBigIntSuffix()
			return l.token(TokenNumber, start)
		case 'b', 'B':
			l.advanceN(2)
			for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
				l.advance()
			}
			l.eatBigIntSuffix()
			return l.token(TokenNumber, start)
		case 'o', 'O':
			l.advanceN(2)
			for l.peek() >= '0' && l.peek() <= '7' || l.peek() == '_' {
				l.advance()
			}
			l.eatBigIntSuffix()
			return l.token(TokenNumber, start)
		}
	}

	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	l.eatBigIntSuffix()
	return l.token(TokenNumber, start)
}

func (l *Lexer) eatBigIntSuffix() {
	if l.peek() == 'n' {
		l.advance()
	}
}

func (l *Lexer) scanString(start int) Token {
	quote := l.advance()
	terminated := false
	for l.peek() != 0 && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
			if l.peek() != 0 {
				l.advance()
			}
			continue
		}
		if l.peek() == quote {
			l.advance()
			terminated = true
			break
		}
		l.advance()
	}
	if !terminated {
		l.errorf(Span{Start: start, End: l.pos}, "unterminated string literal")
	}
	return l.token(TokenString, start)
}

// scanTemplateChunk lexes one segment of a template literal. When head
// is true the segment opens with a backtick, otherwise with the closing
// brace of a substitution. The segment ends at `${` (head/middle) or at
// the closing backtick (no-substitution/tail).
func (l *Lexer) scanTemplateChunk(start int, head bool) Token {
	l.advance() // ` or }
	for l.peek() != 0 {
		if l.peek() == '\\' {
			l.advance()
			if l.peek() != 0 {
				l.advance()
			}
			continue
		}
		if l.peek() == '`' {
			l.advance()
			if head {
				return l.token(TokenNoSubstTemplate, start)
			}
			return l.token(TokenTemplateTail, start)
		}
		if l.peek() == '$' && l.peekN(1) == '{' {
			l.advanceN(2)
			if head {
				return l.token(TokenTemplateHead, start)
			}
			return l.token(TokenTemplateMiddle, start)
		}
		l.advance()
	}
	l.errorf(Span{Start: start, End: l.pos}, "unterminated template literal")
	if head {
		return l.token(TokenNoSubstTemplate, start)
	}
	return l.token(TokenTemplateTail, start)
}

func (l *Lexer) scanRegex(start int) Token {
	l.advance() // /
	inClass := false
	terminated := false
	for l.peek() != 0 && l.peek() != '\n' {
		ch := l.peek()
		if ch == '\\' {
			l.advance()
			if l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		if ch == '[' {
			inClass = true
		} else if ch == ']' {
			inClass = false
		} else if ch == '/' && !inClass {
			l.advance()
			terminated = true
			break
		}
		l.advance()
	}
	if !terminated {
		l.errorf(Span{Start: start, End: l.pos}, "unterminated regular expression literal")
		return l.token(TokenRegex, start)
	}
	for isIdentPart(l.peek()) { // flags
		l.advance()
	}
	return l.token(TokenRegex, start)
}

// scanJSXText consumes raw element child text. Stops before '<', '{',
// and '}' so tags and substitutions lex normally; never empty because
// the caller only selects this context when not at one of those bytes.
func (l *Lexer) scanJSXText(start int) Token {
	for l.peek() != 0 && l.peek() != '<' && l.peek() != '{' && l.peek() != '}' {
		l.advance()
	}
	if l.pos == start {
		return l.Next(LexDiv)
	}
	return l.token(TokenJSXText, start)
}

func (l *Lexer) scanOperator(start int) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)

	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.advanceN(3)
			return l.token(TokenEllipsis, start)
		}
		l.advance()
		return l.token(TokenDot, start)

	case '?':
		if l.peekN(1) == '?' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenNullishAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenNullish, start)
		}
		// ?.5 is a ternary branch starting with a number, not optional
		// chaining.
		if l.peekN(1) == '.' && !isDigit(l.peekN(2)) {
			l.advanceN(2)
			return l.token(TokenQuestionDot, start)
		}
		l.advance()
		return l.token(TokenQuestion, start)

	case '=':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictEQ, start)
			}
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictNE, start)
			}
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenAndAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenBitAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenOrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenBitOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenBitXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStarStarAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenStarStar, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	// Unrecognized byte (or a multi-byte rune we have no token for).
	// Consume one whole rune so totality holds on arbitrary input.
	_, size := utf8.DecodeRune(l.input[l.pos:])
	if size < 1 {
		size = 1
	}
	l.advanceN(size)
	return l.token(TokenUnknown, start)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.pos},
		Literal: string(l.input[start:l.pos]),
	}
}

func isWhitespaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r)
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return isIdentStart(ch) || isDigit(ch)
}

package parser

// TriviaPolicy decides where trivia between two tokens lands. The
// choice is observable whenever a tree is mutated and re-printed: it
// determines which node a comment travels with.
type TriviaPolicy int

const (
	// TriviaSameLineTrailing attaches trivia that starts on the same
	// line as the preceding token to that token's trailing list;
	// everything from the first line break on becomes leading trivia of
	// the following token. A comment alone on its own line therefore
	// leads the token below it. This is the default.
	TriviaSameLineTrailing TriviaPolicy = iota
	// TriviaAllLeading attaches every trivia piece as leading trivia of
	// the following token.
	TriviaAllLeading
)

// TokenSource is the buffering layer between the lexer and the parser.
// It attaches trivia to meaningful tokens, offers bounded lookahead,
// and records the finished token list that the tree sink replays.
//
// Lookahead is bounded: no grammar production needs more than three
// tokens of lookahead, so the buffer stays small and parsing stays
// linear.
type TokenSource struct {
	lexer    *Lexer
	policy   TriviaPolicy
	buf      []Token // meaningful tokens, leading trivia attached
	pending  []Trivia
	finished []Token
	lastKind TokenKind
	atEOF    bool
}

func NewTokenSource(input []byte, policy TriviaPolicy) *TokenSource {
	s := &TokenSource{
		lexer:    NewLexer(input),
		policy:   policy,
		lastKind: TokenEOF,
	}
	s.fill(1)
	return s
}

// Current returns the token at the parser position without consuming it.
func (s *TokenSource) Current() Token {
	s.fill(1)
	return s.buf[0]
}

// CurrentKind is shorthand for Current().Kind.
func (s *TokenSource) CurrentKind() TokenKind {
	return s.Current().Kind
}

// Nth returns the kind of the token n positions ahead. Grammar
// productions use a fixed lookahead of at most three; the one exception
// is the arrow-function head scan, which walks to the parenthesis that
// closes a parameter list.
func (s *TokenSource) Nth(n int) TokenKind {
	s.fill(n + 1)
	if n >= len(s.buf) {
		return TokenEOF
	}
	return s.buf[n].Kind
}

// HasPrecedingLineBreak reports whether a line break occurs in the
// current token's leading trivia. Automatic semicolon insertion and the
// restricted productions (return, throw, ++/--) depend on this.
func (s *TokenSource) HasPrecedingLineBreak() bool {
	for _, tr := range s.Current().Leading {
		if tr.ContainsNewline() {
			return true
		}
	}
	return false
}

// Bump consumes the current token and returns it with both trivia
// lists finalized. At end of input it keeps returning the EOF token.
func (s *TokenSource) Bump() Token {
	// Lexing one token ahead finalizes the current token's trailing
	// trivia.
	s.fill(2)
	tok := s.buf[0]
	if tok.Kind != TokenEOF {
		s.buf = s.buf[1:]
		s.lastKind = tok.Kind
		s.finished = append(s.finished, tok)
	}
	return tok
}

// ReLex re-interprets the current token under a different lexing
// context, discarding any lookahead. Used when the parser knows more
// than the lexing heuristic: a slash in expression position is a regex,
// a closing brace after a template substitution continues the template,
// and JSX children lex as raw text.
func (s *TokenSource) ReLex(ctx LexContext) TokenKind {
	s.fill(1)
	cur := s.buf[0]
	if cur.Kind == TokenEOF {
		return TokenEOF
	}
	s.lexer.Rewind(cur.Span.Start)
	tok := s.lexer.Next(ctx)
	tok.Leading = cur.Leading
	s.buf = []Token{tok}
	s.pending = nil
	s.atEOF = false
	return tok.Kind
}

// ByteAfter returns the raw input byte immediately following the
// current token, or zero at end of input. JSX parsing uses it to tell a
// closing tag from a nested element before consuming '<'.
func (s *TokenSource) ByteAfter() byte {
	end := s.Current().Span.End
	if end < len(s.lexer.input) {
		return s.lexer.input[end]
	}
	return 0
}

// Finished returns the consumed token list, ending with the EOF token
// once it has been bumped. This is the list the tree sink replays.
func (s *TokenSource) Finished() []Token {
	return s.finished
}

// FinishEOF consumes the EOF token so that trailing file trivia ends up
// on the finished list. Called once by the parser after the root
// production completes.
func (s *TokenSource) FinishEOF() {
	for s.CurrentKind() != TokenEOF {
		s.Bump()
	}
	s.finished = append(s.finished, s.buf[0])
}

// Diagnostics returns lex-level diagnostics (unterminated literals and
// the like).
func (s *TokenSource) Diagnostics() []Diagnostic {
	return s.lexer.Diagnostics()
}

func (s *TokenSource) fill(n int) {
	for len(s.buf) < n && !s.atEOF {
		tok := s.lexer.Next(s.nextContext())
		if tok.Kind.IsTrivia() {
			s.pending = append(s.pending, Trivia{
				Kind: triviaKindFor(tok.Kind),
				Span: tok.Span,
				Text: tok.Literal,
			})
			continue
		}
		trailing, leading := s.splitPending()
		s.attachTrailing(trailing)
		tok.Leading = leading
		s.pending = nil
		s.buf = append(s.buf, tok)
		if tok.Kind == TokenEOF {
			s.atEOF = true
		}
	}
}

// nextContext picks the lexing context for the next unit from the last
// meaningful token: after a value a slash divides, otherwise it starts
// a regex. The parser overrides the cases the heuristic cannot see
// (template continuations, JSX) through ReLex.
func (s *TokenSource) nextContext() LexContext {
	last := s.lastKind
	if len(s.buf) > 0 {
		last = s.buf[len(s.buf)-1].Kind
	}
	switch last {
	case TokenIdent, TokenPrivateName, TokenNumber, TokenString, TokenRegex,
		TokenNoSubstTemplate, TokenTemplateTail, TokenJSXText,
		TokenRParen, TokenRBracket, TokenRBrace,
		TokenThis, TokenSuper, TokenTrue, TokenFalse, TokenNull,
		TokenIncrement, TokenDecrement:
		return LexDiv
	}
	if last.IsContextualKeyword() {
		return LexDiv
	}
	return LexRegex
}

// splitPending divides accumulated trivia between the previous token's
// trailing list and the next token's leading list according to the
// policy. When no token precedes, everything leads.
func (s *TokenSource) splitPending() (trailing, leading []Trivia) {
	if s.policy == TriviaAllLeading || !s.hasPrevious() {
		return nil, s.pending
	}
	for i, tr := range s.pending {
		if tr.ContainsNewline() {
			return s.pending[:i], s.pending[i:]
		}
	}
	return s.pending, nil
}

func (s *TokenSource) hasPrevious() bool {
	return len(s.buf) > 0 || len(s.finished) > 0
}

func (s *TokenSource) attachTrailing(trailing []Trivia) {
	if len(trailing) == 0 {
		return
	}
	if len(s.buf) > 0 {
		last := &s.buf[len(s.buf)-1]
		last.Trailing = append(last.Trailing, trailing...)
		return
	}
	last := &s.finished[len(s.finished)-1]
	last.Trailing = append(last.Trailing, trailing...)
}

func triviaKindFor(kind TokenKind) TriviaKind {
	switch kind {
	case TokenLineComment:
		return TriviaLineComment
	case TokenBlockComment:
		return TriviaBlockComment
	default:
		return TriviaWhitespace
	}
}

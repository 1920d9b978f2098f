package parser

import "fmt"

// SourceType selects the top-level grammar.
type SourceType int

const (
	// SourceScript parses a classic script: import/export are not
	// allowed at the top level.
	SourceScript SourceType = iota
	// SourceModule parses an ES module: top-level import/export,
	// strict mode throughout.
	SourceModule
)

func (t SourceType) String() string {
	if t == SourceModule {
		return "module"
	}
	return "script"
}

type Option func(*Parser)

// WithSourceType selects script or module grammar. Scripts are the
// default.
func WithSourceType(t SourceType) Option {
	return func(p *Parser) {
		p.sourceType = t
	}
}

// WithJSX enables JSX element parsing.
func WithJSX() Option {
	return func(p *Parser) {
		p.jsx = true
	}
}

// WithTriviaPolicy overrides the default trivia attachment policy.
func WithTriviaPolicy(policy TriviaPolicy) Option {
	return func(p *Parser) {
		p.triviaPolicy = policy
	}
}

// state is the transient, scope-dependent context threaded through the
// parse. It is a plain value: saving and restoring it around a scope's
// body is a copy, so an early return can never leak context into a
// sibling production.
type state struct {
	strict       bool
	inFunction   bool
	inGenerator  bool
	inAsync      bool
	inIteration  bool
	inSwitch     bool
	inParameters bool
	// noIn disables the `in` operator while parsing a for-statement
	// head, where it would be ambiguous with for-in.
	noIn bool
}

// Parser is the recursive-descent engine. It consumes tokens from the
// source and emits events; it never constructs tree nodes itself.
// A Parser is single-use and exists only for the duration of one parse.
type Parser struct {
	source       *TokenSource
	events       []Event
	state        state
	sourceType   SourceType
	jsx          bool
	triviaPolicy TriviaPolicy
	recovery     []recoverySet
	depth        int
}

// ParseResult is what a parse always produces, whatever the input: a
// root node covering every byte, diagnostics, and a line index for
// rendering positions.
type ParseResult struct {
	Root        *SyntaxNode
	Diagnostics []Diagnostic
	Lines       *LineIndex
}

// HasErrors reports whether the parse recorded any error-severity
// diagnostic.
func (r *ParseResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Parse parses a complete source buffer. It never fails: malformed
// regions become error nodes and diagnostics, and the returned tree
// reproduces the input exactly.
func Parse(src []byte, opts ...Option) *ParseResult {
	p := newParser(src, opts...)
	p.parseRoot()
	return p.finish(src)
}

// ParseExpression parses a standalone expression, for REPL-style
// evaluation or embedding. Input past the expression is preserved in an
// error node.
func ParseExpression(src []byte, opts ...Option) *ParseResult {
	p := newParser(src, opts...)
	root := p.Start()
	if p.parseExpr() == nil {
		p.errHere("expected an expression")
	}
	p.consumeRemaining()
	root.Complete(p, KindScript)
	return p.finish(src)
}

func newParser(src []byte, opts ...Option) *Parser {
	p := &Parser{triviaPolicy: TriviaSameLineTrailing}
	for _, opt := range opts {
		opt(p)
	}
	p.source = NewTokenSource(src, p.triviaPolicy)
	if p.sourceType == SourceModule {
		p.state.strict = true
		// Top-level await is part of the module grammar.
		p.state.inAsync = true
	}
	return p
}

func (p *Parser) parseRoot() {
	root := p.Start()
	defer p.pushRecovery(statementStart)()
	for !p.at(TokenEOF) {
		progress := p.cursor()
		p.parseStatement()
		if !p.advanced(progress) {
			// A statement parser that consumes nothing would loop
			// forever; skip the offending token into an error node.
			p.skipUnexpected("unexpected token")
		}
	}
	if p.sourceType == SourceModule {
		root.Complete(p, KindModule)
	} else {
		root.Complete(p, KindScript)
	}
}

func (p *Parser) finish(src []byte) *ParseResult {
	p.source.FinishEOF()
	sink := NewTreeSink(p.source.Finished())
	rootNode, eventDiags := sink.Build(p.events)

	diags := append([]Diagnostic{}, p.source.Diagnostics()...)
	diags = append(diags, eventDiags...)

	return &ParseResult{
		Root:        rootNode,
		Diagnostics: diags,
		Lines:       NewLineIndex(string(src)),
	}
}

// consumeRemaining wraps any unparsed trailing tokens in an error node
// so the tree still covers the whole input.
func (p *Parser) consumeRemaining() {
	if p.at(TokenEOF) {
		return
	}
	start := p.source.Current().Span
	m := p.Start()
	for !p.at(TokenEOF) {
		p.bumpAny()
	}
	m.Complete(p, KindError)
	p.err(start, "unexpected tokens after the parsed input")
}

// --- token access ---

func (p *Parser) cur() Token {
	return p.source.Current()
}

func (p *Parser) at(kind TokenKind) bool {
	return p.source.CurrentKind() == kind
}

// nthAt peeks n tokens ahead. Callers keep n at three or below; the
// grammar is designed around fixed small lookahead.
func (p *Parser) nthAt(n int, kind TokenKind) bool {
	return p.source.Nth(n) == kind
}

func (p *Parser) atAny(kinds ...TokenKind) bool {
	cur := p.source.CurrentKind()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// atIdentLike treats contextual keywords as identifiers.
func (p *Parser) atIdentLike() bool {
	k := p.source.CurrentKind()
	return k == TokenIdent || k.IsContextualKeyword()
}

// bump consumes the current token and emits a token event.
func (p *Parser) bump(kind TokenKind) {
	if !p.at(kind) {
		panic(fmt.Sprintf("parser internal: bump(%v) but at %v", kind, p.source.CurrentKind()))
	}
	p.bumpAny()
}

func (p *Parser) bumpAny() {
	if p.at(TokenEOF) {
		return
	}
	p.source.Bump()
	p.events = append(p.events, Event{Kind: EventToken})
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind TokenKind) bool {
	if !p.at(kind) {
		return false
	}
	p.bumpAny()
	return true
}

// expect consumes the expected token or records a diagnostic at the
// current position without consuming anything.
func (p *Parser) expect(kind TokenKind) bool {
	if p.eat(kind) {
		return true
	}
	p.errHere("expected %q but found %q", kind.String(), p.source.CurrentKind().String())
	return false
}

func (p *Parser) hasLineBreakBefore() bool {
	return p.source.HasPrecedingLineBreak()
}

// eatSemicolon implements automatic semicolon insertion: an explicit
// semicolon, a closing brace, end of input, or a preceding line break
// all terminate the statement.
func (p *Parser) eatSemicolon() {
	if p.eat(TokenSemicolon) {
		return
	}
	if p.at(TokenRBrace) || p.at(TokenEOF) || p.hasLineBreakBefore() {
		return
	}
	p.errHere("expected a semicolon or line break, found %q", p.source.CurrentKind().String())
}

// --- progress tracking ---

type cursor int

func (p *Parser) cursor() cursor {
	return cursor(len(p.source.Finished()))
}

func (p *Parser) advanced(c cursor) bool {
	return cursor(len(p.source.Finished())) > c
}

// skipUnexpected wraps the current token in an error node with a
// diagnostic. Guarantees one token of progress.
func (p *Parser) skipUnexpected(message string) {
	tok := p.cur()
	m := p.Start()
	p.bumpAny()
	m.Complete(p, KindError)
	p.err(tok.Span, "%s %q", message, tok.Literal)
}

// --- diagnostics ---

func (p *Parser) err(span Span, format string, args ...interface{}) {
	d := &Diagnostic{
		Span:     span,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
	p.events = append(p.events, Event{Kind: EventError, Diag: d})
}

func (p *Parser) errHere(format string, args ...interface{}) {
	p.err(p.cur().Span, format, args...)
}

// --- scoped state ---

// pushState snapshots the context flags; the returned function restores
// them. Callers pair the two with defer so no early return can leave a
// sibling production with stale context.
func (p *Parser) pushState() func() {
	saved := p.state
	return func() { p.state = saved }
}

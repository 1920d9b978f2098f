package parser

import "strings"

// recoverySet is a bitset of token kinds that terminate error
// recovery. Productions push their set while parsing their body; when
// recovery runs it stops at any kind in the enclosing production's set
// or any ancestor's.
type recoverySet struct {
	bits [4]uint64
}

func newRecoverySet(kinds ...TokenKind) recoverySet {
	var s recoverySet
	for _, k := range kinds {
		s.bits[int(k)/64] |= 1 << (uint(k) % 64)
	}
	return s
}

func (s recoverySet) has(k TokenKind) bool {
	return s.bits[int(k)/64]&(1<<(uint(k)%64)) != 0
}

func (s recoverySet) with(kinds ...TokenKind) recoverySet {
	out := s
	for _, k := range kinds {
		out.bits[int(k)/64] |= 1 << (uint(k) % 64)
	}
	return out
}

// statementStart is the set of tokens that can begin a statement;
// recovery inside statements stops here so the rest of the file keeps
// parsing.
var statementStart = newRecoverySet(
	TokenLBrace, TokenRBrace, TokenSemicolon,
	TokenVar, TokenLet, TokenConst,
	TokenIf, TokenFor, TokenWhile, TokenDo, TokenSwitch,
	TokenTry, TokenThrow, TokenReturn, TokenBreak, TokenContinue,
	TokenFunction, TokenClass, TokenImport, TokenExport,
	TokenDebugger,
)

// pushRecovery adds a set for the duration of a production. The
// returned function pops it; callers pair the two with defer.
func (p *Parser) pushRecovery(set recoverySet) func() {
	p.recovery = append(p.recovery, set)
	return func() {
		p.recovery = p.recovery[:len(p.recovery)-1]
	}
}

func (p *Parser) inRecoverySet(k TokenKind) bool {
	for _, set := range p.recovery {
		if set.has(k) {
			return true
		}
	}
	return false
}

// recover is invoked when an expected production is absent. If the
// current token already terminates recovery (or input ended), it only
// records a diagnostic and the caller emits an absent child. Otherwise
// it consumes tokens into an error node until it reaches a recovery
// token or end of input. Either way at least one of "token consumed"
// or "at recovery point" holds, so recovery always makes progress and
// the whole parse stays linear.
func (p *Parser) recover(message string, expected ...TokenKind) {
	cur := p.cur()
	msg := message
	if len(expected) > 0 {
		msg += " (expected " + formatKinds(expected) + ")"
	}

	if cur.Kind == TokenEOF || p.inRecoverySet(cur.Kind) {
		p.err(cur.Span, "%s", msg)
		return
	}

	span := cur.Span
	m := p.Start()
	for !p.at(TokenEOF) && !p.inRecoverySet(p.source.CurrentKind()) {
		span = span.Cover(p.cur().Span)
		p.bumpAny()
	}
	m.Complete(p, KindError)
	p.err(span, "%s", msg)
}

func formatKinds(kinds []TokenKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = "'" + k.String() + "'"
	}
	return strings.Join(parts, ", ")
}

package parser

// parseJSXElement parses a JSX element or fragment. The lexing
// heuristic cannot see JSX, so the parser re-lexes at every point where
// JSX grammar diverges: children are raw text, and the slash of a
// closing tag is an operator, never a regex.
func (p *Parser) parseJSXElement() *CompletedMarker {
	if p.depth >= maxDepth {
		p.errHere("expression is nested too deeply")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	m := p.Start()

	open := p.Start()
	p.bump(TokenLT)
	selfClosing := false
	if !p.at(TokenGT) { // <> opens a fragment
		p.parseJSXName()
		p.parseJSXAttributes()
		if p.at(TokenSlash) {
			p.bump(TokenSlash)
			selfClosing = true
		}
	}
	p.expect(TokenGT)
	open.Complete(p, KindJSXOpeningElement)

	if selfClosing {
		c := m.Complete(p, KindJSXElement)
		return &c
	}

	for {
		if p.at(TokenEOF) {
			p.errHere("unterminated JSX element")
			break
		}
		// Everything between tags is raw text up to '<' or '{'.
		p.source.ReLex(LexJSXText)
		switch p.source.CurrentKind() {
		case TokenJSXText:
			p.bumpAny()
		case TokenLBrace:
			p.parseJSXExprContainer()
		case TokenLT:
			if p.source.ByteAfter() == '/' {
				p.parseJSXClosingElement()
				c := m.Complete(p, KindJSXElement)
				return &c
			}
			if p.parseJSXElement() == nil {
				p.skipUnexpected("unexpected token in JSX children")
			}
		case TokenEOF:
			// handled at loop top
		default:
			p.skipUnexpected("unexpected token in JSX children")
		}
	}

	c := m.Complete(p, KindJSXElement)
	return &c
}

func (p *Parser) parseJSXClosingElement() {
	m := p.Start()
	p.bump(TokenLT)
	// The slash was lexed under the regex heuristic; re-read it as an
	// operator.
	p.source.ReLex(LexDiv)
	p.expect(TokenSlash)
	if !p.at(TokenGT) { // </> closes a fragment
		p.parseJSXName()
	}
	p.expect(TokenGT)
	m.Complete(p, KindJSXClosingElement)
}

// parseJSXName parses an element or attribute name: identifier parts
// joined by '.', ':', or '-'.
func (p *Parser) parseJSXName() {
	if !p.atIdentLike() && !p.cur().Kind.IsKeyword() {
		p.errHere("expected a JSX name, found %q", p.source.CurrentKind().String())
		return
	}
	p.bumpAny()
	for p.atAny(TokenDot, TokenColon, TokenMinus) {
		p.bumpAny()
		if p.atIdentLike() || p.cur().Kind.IsKeyword() {
			p.bumpAny()
		} else {
			p.errHere("expected a JSX name part")
			return
		}
	}
}

func (p *Parser) parseJSXAttributes() {
	for {
		switch {
		case p.at(TokenLBrace):
			// {...spread}
			p.parseJSXExprContainer()
		case p.atIdentLike() || p.cur().Kind.IsKeyword():
			a := p.Start()
			p.parseJSXName()
			if p.eat(TokenAssign) {
				switch {
				case p.at(TokenString):
					p.bump(TokenString)
				case p.at(TokenLBrace):
					p.parseJSXExprContainer()
				case p.at(TokenLT):
					p.parseJSXElement()
				default:
					p.errHere("expected a JSX attribute value")
				}
			}
			a.Complete(p, KindJSXAttribute)
		default:
			return
		}
	}
}

func (p *Parser) parseJSXExprContainer() {
	m := p.Start()
	p.bump(TokenLBrace)
	p.eat(TokenEllipsis)
	defer p.pushRecovery(newRecoverySet(TokenRBrace))()
	if !p.at(TokenRBrace) {
		if p.parseExpr() == nil {
			p.recover("expected an expression inside '{ }'", TokenRBrace)
		}
	}
	p.expect(TokenRBrace)
	m.Complete(p, KindJSXExprContainer)
}

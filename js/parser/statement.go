package parser

// parseStatement parses one statement or declaration. It always makes
// progress unless the caller's loop guard catches it; every branch
// either consumes a token or delegates to recovery.
func (p *Parser) parseStatement() {
	if p.depth >= maxDepth {
		p.skipUnexpected("statement is nested too deeply; skipping")
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	switch p.source.CurrentKind() {
	case TokenLBrace:
		p.parseBlock()
	case TokenSemicolon:
		m := p.Start()
		p.bump(TokenSemicolon)
		m.Complete(p, KindEmptyStmt)
	case TokenVar, TokenConst:
		p.parseVarStatement()
	case TokenLet:
		// `let` is contextual: only a declaration when a binding form
		// follows on the same line.
		if p.letDeclarationAhead() {
			p.parseVarStatement()
		} else {
			p.parseExpressionStatement()
		}
	case TokenIf:
		p.parseIfStatement()
	case TokenFor:
		p.parseForStatement()
	case TokenWhile:
		p.parseWhileStatement()
	case TokenDo:
		p.parseDoStatement()
	case TokenSwitch:
		p.parseSwitchStatement()
	case TokenTry:
		p.parseTryStatement()
	case TokenThrow:
		p.parseThrowStatement()
	case TokenReturn:
		p.parseReturnStatement()
	case TokenBreak, TokenContinue:
		p.parseBreakOrContinue()
	case TokenWith:
		p.parseWithStatement()
	case TokenDebugger:
		m := p.Start()
		p.bump(TokenDebugger)
		p.eatSemicolon()
		m.Complete(p, KindDebuggerStmt)
	case TokenFunction:
		p.parseFunctionDecl(false)
	case TokenAsync:
		if p.nthAt(1, TokenFunction) && !p.hasLineBreakAfterNext() {
			p.parseFunctionDecl(true)
			return
		}
		p.parseExpressionStatement()
	case TokenClass:
		p.parseClassDecl()
	case TokenImport:
		// import( and import. start an expression, not a declaration.
		if p.nthAt(1, TokenLParen) || p.nthAt(1, TokenDot) {
			p.parseExpressionStatement()
			return
		}
		p.parseImportDecl()
	case TokenExport:
		p.parseExportDecl()
	default:
		if p.atIdentLike() && p.nthAt(1, TokenColon) {
			p.parseLabeledStatement()
			return
		}
		p.parseExpressionStatement()
	}
}

// letDeclarationAhead distinguishes `let` the declaration keyword from
// `let` the identifier. Lookahead depth one.
func (p *Parser) letDeclarationAhead() bool {
	k := p.source.Nth(1)
	return k == TokenIdent || k.IsContextualKeyword() ||
		k == TokenLBracket || k == TokenLBrace
}

func (p *Parser) parseBlock() {
	m := p.Start()
	p.bump(TokenLBrace)
	defer p.pushRecovery(newRecoverySet(TokenRBrace))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		progress := p.cursor()
		p.parseStatement()
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRBrace)
	m.Complete(p, KindBlock)
}

func (p *Parser) parseExpressionStatement() {
	m := p.Start()
	if p.parseExpr() == nil {
		m.Abandon(p)
		p.recover("expected a statement")
		return
	}
	p.eatSemicolon()
	m.Complete(p, KindExprStmt)
}

// parseVarStatement parses a var/let/const statement including its
// terminating semicolon.
func (p *Parser) parseVarStatement() {
	m := p.parseVarDecl()
	n := m.Precede(p)
	p.eatSemicolon()
	n.Complete(p, KindVarStmt)
}

// parseVarDecl parses the declaration itself without a semicolon, so
// for-statement heads can reuse it.
func (p *Parser) parseVarDecl() CompletedMarker {
	m := p.Start()
	p.bumpAny() // var, let, or const
	for {
		p.parseVarDeclarator()
		if !p.eat(TokenComma) {
			break
		}
	}
	return m.Complete(p, KindVarDecl)
}

func (p *Parser) parseVarDeclarator() {
	m := p.Start()
	p.parseBindingTarget()
	if p.eat(TokenAssign) {
		if p.parseAssignExpr() == nil {
			p.errHere("expected an initializer after '='")
		}
	}
	m.Complete(p, KindVarDeclarator)
}

// parseBindingTarget parses an identifier or a destructuring pattern.
// Patterns reuse the array and object literal grammars, which cover
// every pattern form.
func (p *Parser) parseBindingTarget() {
	switch {
	case p.atIdentLike():
		p.completeSingle(KindIdentifier)
	case p.at(TokenLBracket):
		p.parseArrayExpr()
	case p.at(TokenLBrace):
		p.parseObjectExpr()
	default:
		p.recover("expected a binding name or pattern", TokenIdent)
	}
}

func (p *Parser) parseIfStatement() {
	m := p.Start()
	p.bump(TokenIf)
	p.parseParenCondition()
	p.parseStatement()
	if p.at(TokenElse) {
		p.bump(TokenElse)
		p.parseStatement()
	}
	m.Complete(p, KindIfStmt)
}

func (p *Parser) parseParenCondition() {
	p.expect(TokenLParen)
	defer p.pushRecovery(newRecoverySet(TokenRParen))()
	if p.parseExpr() == nil {
		p.recover("expected a condition expression", TokenRParen)
	}
	p.expect(TokenRParen)
}

func (p *Parser) parseWhileStatement() {
	m := p.Start()
	p.bump(TokenWhile)
	p.parseParenCondition()
	restore := p.pushState()
	p.state.inIteration = true
	p.parseStatement()
	restore()
	m.Complete(p, KindWhileStmt)
}

func (p *Parser) parseDoStatement() {
	m := p.Start()
	p.bump(TokenDo)
	restore := p.pushState()
	p.state.inIteration = true
	p.parseStatement()
	restore()
	p.expect(TokenWhile)
	p.parseParenCondition()
	// The semicolon after do-while is always optional.
	p.eat(TokenSemicolon)
	m.Complete(p, KindDoStmt)
}

// parseForStatement parses the three for-statement forms. The head is
// ambiguous until `in`, `of`, or `;` is seen, so the initializer is
// parsed with the `in` operator disabled and the form decided after.
func (p *Parser) parseForStatement() {
	m := p.Start()
	p.bump(TokenFor)
	p.eat(TokenAwait)
	p.expect(TokenLParen)
	defer p.pushRecovery(newRecoverySet(TokenRParen, TokenSemicolon))()

	kind := KindForStmt
	if !p.at(TokenSemicolon) {
		restore := p.pushState()
		p.state.noIn = true
		if p.atAny(TokenVar, TokenConst) || (p.at(TokenLet) && p.letDeclarationAhead()) {
			p.parseVarDecl()
		} else if p.parseExpr() == nil {
			p.recover("expected a for-statement initializer", TokenSemicolon, TokenRParen)
		}
		restore()

		switch {
		case p.at(TokenIn):
			p.bump(TokenIn)
			kind = KindForInStmt
			if p.parseAssignExpr() == nil {
				p.errHere("expected an expression after 'in'")
			}
		case p.at(TokenOf):
			p.bump(TokenOf)
			kind = KindForOfStmt
			if p.parseAssignExpr() == nil {
				p.errHere("expected an expression after 'of'")
			}
		}
	}

	if kind == KindForStmt {
		p.expect(TokenSemicolon)
		if !p.at(TokenSemicolon) {
			if p.parseExpr() == nil && !p.at(TokenSemicolon) {
				p.recover("expected a loop condition", TokenSemicolon, TokenRParen)
			}
		}
		p.expect(TokenSemicolon)
		if !p.at(TokenRParen) {
			if p.parseExpr() == nil && !p.at(TokenRParen) {
				p.recover("expected a loop update expression", TokenRParen)
			}
		}
	}

	p.expect(TokenRParen)
	restore := p.pushState()
	p.state.inIteration = true
	p.parseStatement()
	restore()
	m.Complete(p, kind)
}

func (p *Parser) parseSwitchStatement() {
	m := p.Start()
	p.bump(TokenSwitch)
	p.parseParenCondition()
	p.expect(TokenLBrace)
	restoreState := p.pushState()
	p.state.inSwitch = true
	defer p.pushRecovery(statementStart.with(TokenCase, TokenDefault))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		if !p.atAny(TokenCase, TokenDefault) {
			p.recover("expected 'case' or 'default'", TokenCase, TokenDefault)
			if !p.atAny(TokenCase, TokenDefault) {
				break
			}
		}
		p.parseSwitchCase()
	}
	restoreState()
	p.expect(TokenRBrace)
	m.Complete(p, KindSwitchStmt)
}

func (p *Parser) parseSwitchCase() {
	m := p.Start()
	if p.eat(TokenCase) {
		if p.parseExpr() == nil {
			p.errHere("expected a case test expression")
		}
	} else {
		p.bump(TokenDefault)
	}
	p.expect(TokenColon)
	for !p.atAny(TokenCase, TokenDefault, TokenRBrace) && !p.at(TokenEOF) {
		progress := p.cursor()
		p.parseStatement()
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	m.Complete(p, KindSwitchCase)
}

func (p *Parser) parseTryStatement() {
	m := p.Start()
	p.bump(TokenTry)
	if p.at(TokenLBrace) {
		p.parseBlock()
	} else {
		p.recover("expected a block after 'try'", TokenLBrace, TokenCatch, TokenFinally)
	}
	hasHandler := false
	if p.at(TokenCatch) {
		hasHandler = true
		c := p.Start()
		p.bump(TokenCatch)
		if p.eat(TokenLParen) {
			p.parseBindingTarget()
			p.expect(TokenRParen)
		}
		if p.at(TokenLBrace) {
			p.parseBlock()
		} else {
			p.recover("expected a block after 'catch'", TokenLBrace, TokenFinally)
		}
		c.Complete(p, KindCatchClause)
	}
	if p.at(TokenFinally) {
		hasHandler = true
		f := p.Start()
		p.bump(TokenFinally)
		if p.at(TokenLBrace) {
			p.parseBlock()
		} else {
			p.recover("expected a block after 'finally'", TokenLBrace)
		}
		f.Complete(p, KindFinallyClause)
	}
	if !hasHandler {
		p.errHere("expected 'catch' or 'finally' after try block")
	}
	m.Complete(p, KindTryStmt)
}

func (p *Parser) parseThrowStatement() {
	m := p.Start()
	p.bump(TokenThrow)
	if p.hasLineBreakBefore() {
		p.errHere("a line break is not allowed between 'throw' and its expression")
	} else if p.parseExpr() == nil {
		p.errHere("expected an expression after 'throw'")
	}
	p.eatSemicolon()
	m.Complete(p, KindThrowStmt)
}

func (p *Parser) parseReturnStatement() {
	m := p.Start()
	tok := p.cur()
	p.bump(TokenReturn)
	if !p.state.inFunction {
		p.err(tok.Span, "'return' outside of a function")
	}
	if !p.hasLineBreakBefore() && p.startsExpression() {
		p.parseExpr()
	}
	p.eatSemicolon()
	m.Complete(p, KindReturnStmt)
}

func (p *Parser) parseBreakOrContinue() {
	m := p.Start()
	isBreak := p.at(TokenBreak)
	tok := p.cur()
	p.bumpAny()
	if p.atIdentLike() && !p.hasLineBreakBefore() {
		p.completeSingle(KindIdentifier)
	} else if isBreak {
		if !p.state.inIteration && !p.state.inSwitch {
			p.err(tok.Span, "'break' outside of a loop or switch")
		}
	} else if !p.state.inIteration {
		p.err(tok.Span, "'continue' outside of a loop")
	}
	p.eatSemicolon()
	if isBreak {
		m.Complete(p, KindBreakStmt)
	} else {
		m.Complete(p, KindContinueStmt)
	}
}

func (p *Parser) parseWithStatement() {
	m := p.Start()
	tok := p.cur()
	p.bump(TokenWith)
	if p.state.strict {
		p.err(tok.Span, "'with' is not allowed in strict mode")
	}
	p.parseParenCondition()
	p.parseStatement()
	m.Complete(p, KindWithStmt)
}

func (p *Parser) parseLabeledStatement() {
	m := p.Start()
	p.completeSingle(KindIdentifier)
	p.bump(TokenColon)
	p.parseStatement()
	m.Complete(p, KindLabeledStmt)
}

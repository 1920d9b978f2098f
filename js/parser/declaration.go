package parser

func (p *Parser) parseFunctionDecl(async bool) {
	m := p.Start()
	p.parseFunctionTail(async, true)
	m.Complete(p, KindFunctionDecl)
}

func (p *Parser) parseFunctionExpr(async bool) *CompletedMarker {
	m := p.Start()
	p.parseFunctionTail(async, false)
	c := m.Complete(p, KindFunctionExpr)
	return &c
}

// parseFunctionTail parses `[async] function [*] [name] (params) body`.
// Declarations require a name; expressions may omit it.
func (p *Parser) parseFunctionTail(async, requireName bool) {
	if async {
		p.bump(TokenAsync)
	}
	p.bump(TokenFunction)
	generator := p.eat(TokenStar)

	if p.atIdentLike() {
		p.completeSingle(KindIdentifier)
	} else if requireName {
		p.errHere("expected a function name")
	}

	defer p.pushState()()
	p.state.inFunction = true
	p.state.inGenerator = generator
	p.state.inAsync = async
	p.state.inIteration = false
	p.state.inSwitch = false

	p.parseParameters()
	if p.at(TokenLBrace) {
		p.parseBlock()
	} else {
		p.recover("expected a function body", TokenLBrace)
	}
}

// parseParameters parses a parenthesized parameter list. Each parameter
// is a binding target with an optional default, or a rest element.
func (p *Parser) parseParameters() {
	m := p.Start()
	if !p.expect(TokenLParen) {
		m.Complete(p, KindParameters)
		return
	}
	restore := p.pushState()
	p.state.inParameters = true
	defer restore()
	defer p.pushRecovery(newRecoverySet(TokenRParen, TokenComma))()

	for !p.at(TokenRParen) && !p.at(TokenEOF) {
		progress := p.cursor()
		param := p.Start()
		rest := p.eat(TokenEllipsis)
		p.parseBindingTarget()
		if p.eat(TokenAssign) {
			if p.parseAssignExpr() == nil {
				p.errHere("expected a default value after '='")
			}
		}
		param.Complete(p, KindParameter)
		if rest && !p.at(TokenRParen) {
			p.errHere("a rest parameter must be the last parameter")
		}
		if !p.at(TokenRParen) && !p.eat(TokenComma) {
			p.recover("expected ',' between parameters", TokenComma, TokenRParen)
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRParen)
	m.Complete(p, KindParameters)
}

func (p *Parser) parseClassDecl() {
	m := p.Start()
	p.parseClassTail(true)
	m.Complete(p, KindClassDecl)
}

func (p *Parser) parseClassExpr() *CompletedMarker {
	m := p.Start()
	p.parseClassTail(false)
	c := m.Complete(p, KindClassExpr)
	return &c
}

// parseClassTail parses `class [name] [extends expr] { members }`.
// Class bodies are always strict.
func (p *Parser) parseClassTail(requireName bool) {
	p.bump(TokenClass)
	if p.atIdentLike() {
		p.completeSingle(KindIdentifier)
	} else if requireName && !p.at(TokenExtends) && !p.at(TokenLBrace) {
		p.errHere("expected a class name")
	}
	if p.eat(TokenExtends) {
		if heritage := p.parsePostfixExpr(); heritage == nil {
			p.errHere("expected a superclass expression after 'extends'")
		}
	}

	restore := p.pushState()
	p.state.strict = true
	defer restore()

	body := p.Start()
	if !p.expect(TokenLBrace) {
		body.Complete(p, KindClassBody)
		return
	}
	defer p.pushRecovery(newRecoverySet(TokenRBrace, TokenSemicolon))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		if p.eat(TokenSemicolon) {
			continue
		}
		progress := p.cursor()
		p.parseClassMember()
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token in class body")
		}
	}
	p.expect(TokenRBrace)
	body.Complete(p, KindClassBody)
}

// parseClassMember parses a method or a field definition, with the
// static, get/set, async, and generator modifiers.
func (p *Parser) parseClassMember() {
	m := p.Start()

	// `static` is a modifier only when a member name or modifier
	// follows; otherwise it is the member name itself.
	if p.at(TokenStatic) && (p.propertyKeyFollows(1) ||
		p.nthAt(1, TokenStar) || p.nthAt(1, TokenPrivateName) || p.nthAt(1, TokenLBrace)) {
		p.bump(TokenStatic)
		// static initialization block
		if p.at(TokenLBrace) {
			defer p.pushState()()
			p.state.inFunction = true
			p.parseBlock()
			m.Complete(p, KindMethod)
			return
		}
	}

	async := false
	generator := false
	if p.atAny(TokenGet, TokenSet) && (p.propertyKeyFollows(1) || p.nthAt(1, TokenPrivateName)) {
		p.bumpAny()
	} else if p.at(TokenAsync) && !p.hasLineBreakAfterNext() &&
		(p.propertyKeyFollows(1) || p.nthAt(1, TokenStar) || p.nthAt(1, TokenPrivateName)) {
		p.bump(TokenAsync)
		async = true
		generator = p.eat(TokenStar)
	} else if p.at(TokenStar) {
		p.bump(TokenStar)
		generator = true
	}

	p.parsePropertyKey()

	if p.at(TokenLParen) {
		p.parseMethodTail(async, generator)
		m.Complete(p, KindMethod)
		return
	}

	// Field definition with optional initializer.
	if p.eat(TokenAssign) {
		if p.parseAssignExpr() == nil {
			p.errHere("expected a field initializer after '='")
		}
	}
	p.eatSemicolon()
	m.Complete(p, KindFieldDef)
}

// parseMethodTail parses a method's parameter list and body after its
// key, for both object literals and class bodies.
func (p *Parser) parseMethodTail(async, generator bool) {
	defer p.pushState()()
	p.state.inFunction = true
	p.state.inGenerator = generator
	p.state.inAsync = async
	p.state.inIteration = false
	p.state.inSwitch = false

	p.parseParameters()
	if p.at(TokenLBrace) {
		p.parseBlock()
	} else {
		p.recover("expected a method body", TokenLBrace)
	}
}

// --- modules ---

func (p *Parser) parseImportDecl() {
	m := p.Start()
	tok := p.cur()
	p.bump(TokenImport)
	if p.sourceType != SourceModule {
		p.err(tok.Span, "import declarations require module source type")
	}

	// `import "mod"` has no import clause.
	if p.at(TokenString) {
		p.bump(TokenString)
		p.eatSemicolon()
		m.Complete(p, KindImportDecl)
		return
	}

	// Default import, optionally followed by named or namespace imports.
	hasClause := false
	if p.atIdentLike() {
		s := p.Start()
		p.completeSingle(KindIdentifier)
		s.Complete(p, KindImportSpecifier)
		hasClause = true
		if p.at(TokenComma) {
			p.bump(TokenComma)
			hasClause = false
		}
	}
	if !hasClause {
		switch {
		case p.at(TokenStar):
			s := p.Start()
			p.bump(TokenStar)
			p.expectContextual(TokenAs)
			if p.atIdentLike() {
				p.completeSingle(KindIdentifier)
			} else {
				p.errHere("expected a namespace binding name")
			}
			s.Complete(p, KindNamespaceImport)
		case p.at(TokenLBrace):
			p.parseNamedImports()
		default:
			p.recover("expected an import clause", TokenFrom, TokenString, TokenSemicolon)
		}
	}

	p.expectContextual(TokenFrom)
	if !p.eat(TokenString) {
		p.errHere("expected a module specifier string")
	}
	p.eatSemicolon()
	m.Complete(p, KindImportDecl)
}

func (p *Parser) parseNamedImports() {
	m := p.Start()
	p.bump(TokenLBrace)
	defer p.pushRecovery(newRecoverySet(TokenRBrace, TokenComma))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		progress := p.cursor()
		s := p.Start()
		if p.atIdentLike() || p.cur().Kind.IsKeyword() || p.at(TokenString) {
			p.bumpAny()
			if p.at(TokenAs) {
				p.bump(TokenAs)
				if p.atIdentLike() {
					p.completeSingle(KindIdentifier)
				} else {
					p.errHere("expected a local binding name after 'as'")
				}
			}
			s.Complete(p, KindImportSpecifier)
		} else {
			s.Abandon(p)
			p.recover("expected an import specifier", TokenRBrace, TokenComma)
		}
		if !p.at(TokenRBrace) && !p.eat(TokenComma) {
			p.recover("expected ',' between import specifiers", TokenComma, TokenRBrace)
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRBrace)
	m.Complete(p, KindNamedImports)
}

func (p *Parser) parseExportDecl() {
	m := p.Start()
	tok := p.cur()
	p.bump(TokenExport)
	if p.sourceType != SourceModule {
		p.err(tok.Span, "export declarations require module source type")
	}

	switch p.source.CurrentKind() {
	case TokenDefault:
		p.bump(TokenDefault)
		switch {
		case p.at(TokenFunction):
			p.parseFunctionExpr(false)
		case p.at(TokenAsync) && p.nthAt(1, TokenFunction):
			p.parseFunctionExpr(true)
		case p.at(TokenClass):
			p.parseClassExpr()
		default:
			if p.parseAssignExpr() == nil {
				p.errHere("expected an expression after 'export default'")
			}
			p.eatSemicolon()
		}
	case TokenStar:
		p.bump(TokenStar)
		if p.at(TokenAs) {
			p.bump(TokenAs)
			if p.atIdentLike() {
				p.completeSingle(KindIdentifier)
			} else {
				p.errHere("expected a name after 'as'")
			}
		}
		p.expectContextual(TokenFrom)
		if !p.eat(TokenString) {
			p.errHere("expected a module specifier string")
		}
		p.eatSemicolon()
	case TokenLBrace:
		p.parseNamedExports()
		if p.at(TokenFrom) {
			p.bump(TokenFrom)
			if !p.eat(TokenString) {
				p.errHere("expected a module specifier string")
			}
		}
		p.eatSemicolon()
	case TokenVar, TokenLet, TokenConst:
		p.parseVarStatement()
	case TokenFunction:
		p.parseFunctionDecl(false)
	case TokenAsync:
		if p.nthAt(1, TokenFunction) {
			p.parseFunctionDecl(true)
		} else {
			p.recover("expected a declaration after 'export'")
		}
	case TokenClass:
		p.parseClassDecl()
	default:
		p.recover("expected a declaration or export clause after 'export'")
	}
	m.Complete(p, KindExportDecl)
}

func (p *Parser) parseNamedExports() {
	m := p.Start()
	p.bump(TokenLBrace)
	defer p.pushRecovery(newRecoverySet(TokenRBrace, TokenComma))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		progress := p.cursor()
		s := p.Start()
		if p.atIdentLike() || p.cur().Kind.IsKeyword() || p.at(TokenString) {
			p.bumpAny()
			if p.at(TokenAs) {
				p.bump(TokenAs)
				if p.atIdentLike() || p.cur().Kind.IsKeyword() || p.at(TokenString) {
					p.bumpAny()
				} else {
					p.errHere("expected an export name after 'as'")
				}
			}
			s.Complete(p, KindExportSpecifier)
		} else {
			s.Abandon(p)
			p.recover("expected an export specifier", TokenRBrace, TokenComma)
		}
		if !p.at(TokenRBrace) && !p.eat(TokenComma) {
			p.recover("expected ',' between export specifiers", TokenComma, TokenRBrace)
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRBrace)
	m.Complete(p, KindNamedExports)
}

// expectContextual consumes a contextual keyword or records a
// diagnostic without consuming.
func (p *Parser) expectContextual(kind TokenKind) {
	if p.eat(kind) {
		return
	}
	p.errHere("expected %q but found %q", kind.String(), p.source.CurrentKind().String())
}

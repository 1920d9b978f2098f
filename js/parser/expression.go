package parser

// Binding powers for binary and logical operators. The expression
// parser climbs: after parsing a left operand it consumes operators
// whose power is at least the current floor, recursing with a raised
// floor for the right operand. Right-associative operators recurse
// with their own power instead of power+1.
var binaryBindingPower = map[TokenKind]int{
	TokenNullish:    1,
	TokenOr:         2,
	TokenAnd:        3,
	TokenBitOr:      4,
	TokenBitXor:     5,
	TokenBitAnd:     6,
	TokenEQ:         7,
	TokenNE:         7,
	TokenStrictEQ:   7,
	TokenStrictNE:   7,
	TokenLT:         8,
	TokenLE:         8,
	TokenGT:         8,
	TokenGE:         8,
	TokenIn:         8,
	TokenInstanceof: 8,
	TokenShl:        9,
	TokenShr:        9,
	TokenUShr:       9,
	TokenPlus:       10,
	TokenMinus:      10,
	TokenStar:       11,
	TokenSlash:      11,
	TokenPercent:    11,
	TokenStarStar:   12,
}

var assignOps = map[TokenKind]bool{
	TokenAssign:         true,
	TokenPlusAssign:     true,
	TokenMinusAssign:    true,
	TokenStarAssign:     true,
	TokenStarStarAssign: true,
	TokenSlashAssign:    true,
	TokenPercentAssign:  true,
	TokenAndAssign:      true,
	TokenOrAssign:       true,
	TokenNullishAssign:  true,
	TokenBitAndAssign:   true,
	TokenBitOrAssign:    true,
	TokenBitXorAssign:   true,
	TokenShlAssign:      true,
	TokenShrAssign:      true,
	TokenUShrAssign:     true,
}

// maxDepth caps expression and statement nesting so that arbitrarily
// hostile input can never exhaust the stack.
const maxDepth = 500

// parseExpr parses a full expression including comma sequences.
func (p *Parser) parseExpr() *CompletedMarker {
	first := p.parseAssignExpr()
	if first == nil {
		return nil
	}
	for p.at(TokenComma) {
		m := first.Precede(p)
		p.bump(TokenComma)
		if p.parseAssignExpr() == nil {
			p.errHere("expected an expression after ','")
		}
		c := m.Complete(p, KindSequenceExpr)
		first = &c
	}
	return first
}

// parseAssignExpr parses an assignment-level expression: arrows,
// yield, conditional, and the right-associative assignment operators.
func (p *Parser) parseAssignExpr() *CompletedMarker {
	if p.depth >= maxDepth {
		p.errHere("expression is nested too deeply")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	if p.state.inGenerator && p.at(TokenYield) {
		return p.parseYieldExpr()
	}
	if p.atArrowFunction() {
		return p.parseArrowFunction()
	}

	target := p.parseTernaryExpr()
	if target == nil {
		return nil
	}
	if assignOps[p.source.CurrentKind()] {
		m := target.Precede(p)
		p.bumpAny()
		if p.parseAssignExpr() == nil {
			p.errHere("expected an expression after the assignment operator")
		}
		c := m.Complete(p, KindAssignExpr)
		return &c
	}
	return target
}

func (p *Parser) parseTernaryExpr() *CompletedMarker {
	cond := p.parseBinaryExpr(1)
	if cond == nil {
		return nil
	}
	if !p.at(TokenQuestion) {
		return cond
	}
	m := cond.Precede(p)
	p.bump(TokenQuestion)
	if p.parseAssignExpr() == nil {
		p.errHere("expected an expression after '?'")
	}
	p.expect(TokenColon)
	if p.parseAssignExpr() == nil {
		p.errHere("expected an expression after ':'")
	}
	c := m.Complete(p, KindTernaryExpr)
	return &c
}

// parseBinaryExpr climbs operators whose binding power is at least
// minPower. The right-associative recursion for '**' re-enters at the
// same power, so the depth guard applies here too.
func (p *Parser) parseBinaryExpr(minPower int) *CompletedMarker {
	if p.depth >= maxDepth {
		p.errHere("expression is nested too deeply")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	left := p.parseUnaryExpr()
	if left == nil {
		return nil
	}
	for {
		op := p.source.CurrentKind()
		if op == TokenIn && p.state.noIn {
			break
		}
		power, ok := binaryBindingPower[op]
		if !ok || power < minPower {
			break
		}
		m := left.Precede(p)
		p.bumpAny()
		next := power + 1
		if op == TokenStarStar {
			// Exponentiation is right-associative.
			next = power
		}
		if p.parseBinaryExpr(next) == nil {
			p.errHere("expected an expression after %q", op.String())
		}
		c := m.Complete(p, binaryNodeKind(op))
		left = &c
	}
	return left
}

func binaryNodeKind(op TokenKind) SyntaxKind {
	switch op {
	case TokenAnd, TokenOr, TokenNullish:
		return KindLogicalExpr
	case TokenIn:
		return KindInExpr
	case TokenInstanceof:
		return KindInstanceofExpr
	default:
		return KindBinaryExpr
	}
}

func (p *Parser) parseUnaryExpr() *CompletedMarker {
	if p.depth >= maxDepth {
		p.errHere("expression is nested too deeply")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	switch p.source.CurrentKind() {
	case TokenDelete, TokenVoid, TokenTypeof, TokenPlus, TokenMinus, TokenBitNot, TokenNot:
		m := p.Start()
		p.bumpAny()
		if p.parseUnaryExpr() == nil {
			p.errHere("expected an expression after the unary operator")
		}
		c := m.Complete(p, KindUnaryExpr)
		return &c
	case TokenIncrement, TokenDecrement:
		m := p.Start()
		p.bumpAny()
		if p.parseUnaryExpr() == nil {
			p.errHere("expected an expression after the update operator")
		}
		c := m.Complete(p, KindUpdateExpr)
		return &c
	case TokenAwait:
		if p.state.inAsync {
			m := p.Start()
			p.bump(TokenAwait)
			if p.parseUnaryExpr() == nil {
				p.errHere("expected an expression after 'await'")
			}
			c := m.Complete(p, KindAwaitExpr)
			return &c
		}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() *CompletedMarker {
	expr := p.parsePrimaryExpr()
	if expr == nil {
		return nil
	}
	expr = p.parseCallOrMemberSuffixes(expr, true)

	// ++/-- bind as postfix only without an intervening line break.
	if p.atAny(TokenIncrement, TokenDecrement) && !p.hasLineBreakBefore() {
		m := expr.Precede(p)
		p.bumpAny()
		c := m.Complete(p, KindUpdateExpr)
		expr = &c
	}
	return expr
}

// parseCallOrMemberSuffixes consumes member access, computed access,
// optional chaining, call arguments, and tagged templates. With
// allowCall false it parses only member suffixes (used for new-callee).
func (p *Parser) parseCallOrMemberSuffixes(expr *CompletedMarker, allowCall bool) *CompletedMarker {
	for {
		switch {
		case p.at(TokenDot):
			m := expr.Precede(p)
			p.bump(TokenDot)
			p.expectMemberName()
			c := m.Complete(p, KindMemberExpr)
			expr = &c
		case p.at(TokenQuestionDot):
			m := expr.Precede(p)
			p.bump(TokenQuestionDot)
			switch {
			case p.at(TokenLParen) && allowCall:
				p.parseArguments()
				c := m.Complete(p, KindCallExpr)
				expr = &c
			case p.at(TokenLBracket):
				p.bump(TokenLBracket)
				if p.parseExpr() == nil {
					p.errHere("expected an expression inside '[ ]'")
				}
				p.expect(TokenRBracket)
				c := m.Complete(p, KindIndexExpr)
				expr = &c
			default:
				p.expectMemberName()
				c := m.Complete(p, KindMemberExpr)
				expr = &c
			}
		case p.at(TokenLBracket):
			m := expr.Precede(p)
			p.bump(TokenLBracket)
			if p.parseExpr() == nil {
				p.errHere("expected an expression inside '[ ]'")
			}
			p.expect(TokenRBracket)
			c := m.Complete(p, KindIndexExpr)
			expr = &c
		case p.at(TokenLParen) && allowCall:
			m := expr.Precede(p)
			p.parseArguments()
			c := m.Complete(p, KindCallExpr)
			expr = &c
		case p.atAny(TokenTemplateHead, TokenNoSubstTemplate):
			m := expr.Precede(p)
			p.parseTemplateBody()
			c := m.Complete(p, KindTaggedTemplate)
			expr = &c
		default:
			return expr
		}
	}
}

func (p *Parser) expectMemberName() {
	if p.atIdentLike() || p.at(TokenPrivateName) || p.cur().Kind.IsKeyword() {
		p.bumpAny()
		return
	}
	p.errHere("expected a property name after '.', found %q", p.source.CurrentKind().String())
}

func (p *Parser) parseArguments() {
	m := p.Start()
	p.bump(TokenLParen)
	defer p.pushRecovery(newRecoverySet(TokenRParen, TokenComma))()
	for !p.at(TokenRParen) && !p.at(TokenEOF) {
		progress := p.cursor()
		if p.at(TokenEllipsis) {
			s := p.Start()
			p.bump(TokenEllipsis)
			if p.parseAssignExpr() == nil {
				p.errHere("expected an expression after '...'")
			}
			s.Complete(p, KindSpread)
		} else if p.parseAssignExpr() == nil {
			p.recover("expected an argument", TokenRParen)
		}
		if !p.at(TokenRParen) {
			if !p.eat(TokenComma) {
				p.recover("expected ',' between arguments", TokenComma, TokenRParen)
			}
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRParen)
	m.Complete(p, KindArguments)
}

func (p *Parser) parsePrimaryExpr() *CompletedMarker {
	// A slash in expression position starts a regular expression; the
	// lexing heuristic saw operator position, so re-lex.
	if p.atAny(TokenSlash, TokenSlashAssign) {
		p.source.ReLex(LexRegex)
	}

	switch p.source.CurrentKind() {
	case TokenRegex:
		return p.completeSingle(KindRegexLiteral)
	case TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNull:
		return p.completeSingle(KindLiteral)
	case TokenThis, TokenSuper:
		return p.completeSingle(KindIdentifier)
	case TokenPrivateName:
		// Only valid as `#field in obj`; still an identifier node.
		return p.completeSingle(KindIdentifier)
	case TokenNoSubstTemplate, TokenTemplateHead:
		return p.parseTemplateBody()
	case TokenLParen:
		m := p.Start()
		p.bump(TokenLParen)
		defer p.pushRecovery(newRecoverySet(TokenRParen))()
		if p.parseExpr() == nil {
			p.recover("expected an expression inside parentheses", TokenRParen)
		}
		p.expect(TokenRParen)
		c := m.Complete(p, KindParenExpr)
		return &c
	case TokenLBracket:
		return p.parseArrayExpr()
	case TokenLBrace:
		return p.parseObjectExpr()
	case TokenFunction:
		return p.parseFunctionExpr(false)
	case TokenAsync:
		if p.nthAt(1, TokenFunction) && !p.hasLineBreakAfterNext() {
			return p.parseFunctionExpr(true)
		}
	case TokenClass:
		return p.parseClassExpr()
	case TokenNew:
		return p.parseNewExpr()
	case TokenImport:
		// Dynamic import() and import.meta behave like a callee.
		if p.nthAt(1, TokenLParen) || p.nthAt(1, TokenDot) {
			return p.completeSingle(KindIdentifier)
		}
	case TokenLT:
		if p.jsx {
			return p.parseJSXElement()
		}
	}

	if p.atIdentLike() {
		return p.completeSingle(KindIdentifier)
	}
	return nil
}

// completeSingle wraps the current token in a node of the given kind.
func (p *Parser) completeSingle(kind SyntaxKind) *CompletedMarker {
	m := p.Start()
	p.bumpAny()
	c := m.Complete(p, kind)
	return &c
}

// hasLineBreakAfterNext reports a line break in the leading trivia of
// the token after the current one. Used for `async` which only binds
// to a function on the same line.
func (p *Parser) hasLineBreakAfterNext() bool {
	// Lookahead of one token plus its trivia.
	p.source.fill(2)
	if len(p.source.buf) < 2 {
		return false
	}
	for _, tr := range p.source.buf[1].Leading {
		if tr.ContainsNewline() {
			return true
		}
	}
	return false
}

func (p *Parser) parseArrayExpr() *CompletedMarker {
	m := p.Start()
	p.bump(TokenLBracket)
	defer p.pushRecovery(newRecoverySet(TokenRBracket, TokenComma))()
	for !p.at(TokenRBracket) && !p.at(TokenEOF) {
		progress := p.cursor()
		if p.at(TokenComma) {
			// Elision: the hole is represented by the comma alone.
			p.bump(TokenComma)
			continue
		}
		if p.at(TokenEllipsis) {
			s := p.Start()
			p.bump(TokenEllipsis)
			if p.parseAssignExpr() == nil {
				p.errHere("expected an expression after '...'")
			}
			s.Complete(p, KindSpread)
		} else if p.parseAssignExpr() == nil {
			p.recover("expected an array element", TokenRBracket)
		}
		if !p.at(TokenRBracket) && !p.eat(TokenComma) {
			p.recover("expected ',' between array elements", TokenComma, TokenRBracket)
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRBracket)
	c := m.Complete(p, KindArrayExpr)
	return &c
}

func (p *Parser) parseObjectExpr() *CompletedMarker {
	m := p.Start()
	p.bump(TokenLBrace)
	defer p.pushRecovery(newRecoverySet(TokenRBrace, TokenComma))()
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		progress := p.cursor()
		p.parseObjectProperty()
		if !p.at(TokenRBrace) && !p.eat(TokenComma) {
			p.recover("expected ',' between properties", TokenComma, TokenRBrace)
		}
		if !p.advanced(progress) {
			p.skipUnexpected("unexpected token")
		}
	}
	p.expect(TokenRBrace)
	c := m.Complete(p, KindObjectExpr)
	return &c
}

func (p *Parser) parseObjectProperty() {
	if p.at(TokenEllipsis) {
		s := p.Start()
		p.bump(TokenEllipsis)
		if p.parseAssignExpr() == nil {
			p.errHere("expected an expression after '...'")
		}
		s.Complete(p, KindSpread)
		return
	}

	m := p.Start()

	// get/set/async accessor or generator method prefix. A following
	// ':'or ',' or '(' or '}' means the word was the key itself.
	isMethod := false
	async := false
	generator := false
	if p.atAny(TokenGet, TokenSet) && p.propertyKeyFollows(1) {
		p.bumpAny()
		isMethod = true
	} else if p.at(TokenAsync) && (p.propertyKeyFollows(1) || p.nthAt(1, TokenStar)) {
		p.bump(TokenAsync)
		async = true
		isMethod = true
		if p.at(TokenStar) {
			p.bump(TokenStar)
			generator = true
		}
	} else if p.at(TokenStar) {
		p.bump(TokenStar)
		generator = true
		isMethod = true
	}

	p.parsePropertyKey()

	switch {
	case p.at(TokenLParen):
		p.parseMethodTail(async, generator)
		m.Complete(p, KindMethod)
	case p.at(TokenColon):
		p.bump(TokenColon)
		if p.parseAssignExpr() == nil {
			p.errHere("expected a value after ':'")
		}
		m.Complete(p, KindProperty)
	case p.at(TokenAssign):
		// Shorthand with default, valid in destructuring covers.
		p.bump(TokenAssign)
		if p.parseAssignExpr() == nil {
			p.errHere("expected an expression after '='")
		}
		m.Complete(p, KindProperty)
	default:
		if isMethod {
			p.errHere("expected a method body")
		}
		m.Complete(p, KindProperty)
	}
}

// propertyKeyFollows reports whether the nth token can begin a
// property key. Lookahead depth one.
func (p *Parser) propertyKeyFollows(n int) bool {
	k := p.source.Nth(n)
	return k == TokenIdent || k.IsKeyword() || k.IsContextualKeyword() ||
		k == TokenString || k == TokenNumber || k == TokenLBracket
}

func (p *Parser) parsePropertyKey() {
	switch {
	case p.at(TokenLBracket):
		p.bump(TokenLBracket)
		if p.parseAssignExpr() == nil {
			p.errHere("expected an expression inside computed key")
		}
		p.expect(TokenRBracket)
	case p.atAny(TokenString, TokenNumber):
		p.bumpAny()
	case p.atIdentLike() || p.cur().Kind.IsKeyword() || p.at(TokenPrivateName):
		p.bumpAny()
	default:
		p.errHere("expected a property name, found %q", p.source.CurrentKind().String())
	}
}

func (p *Parser) parseNewExpr() *CompletedMarker {
	// `new` chains recurse through the primary expression without
	// passing any other guarded entry point.
	if p.depth >= maxDepth {
		p.errHere("expression is nested too deeply")
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	m := p.Start()
	p.bump(TokenNew)

	// new.target
	if p.at(TokenDot) {
		p.bump(TokenDot)
		p.expectMemberName()
		c := m.Complete(p, KindNewExpr)
		return &c
	}

	callee := p.parsePrimaryExpr()
	if callee == nil {
		p.errHere("expected a constructor expression after 'new'")
	} else {
		p.parseCallOrMemberSuffixes(callee, false)
	}
	if p.at(TokenLParen) {
		p.parseArguments()
	}
	c := m.Complete(p, KindNewExpr)
	return &c
}

func (p *Parser) parseYieldExpr() *CompletedMarker {
	m := p.Start()
	p.bump(TokenYield)
	if !p.hasLineBreakBefore() {
		p.eat(TokenStar)
		if p.startsExpression() {
			p.parseAssignExpr()
		}
	}
	c := m.Complete(p, KindYieldExpr)
	return &c
}

// startsExpression is a conservative check used after yield/return.
func (p *Parser) startsExpression() bool {
	switch p.source.CurrentKind() {
	case TokenSemicolon, TokenRBrace, TokenRParen, TokenRBracket,
		TokenComma, TokenColon, TokenEOF:
		return false
	}
	return true
}

// parseTemplateBody parses a template literal from its head chunk.
// After each substitution expression the closing brace is re-lexed as
// a template continuation.
func (p *Parser) parseTemplateBody() *CompletedMarker {
	m := p.Start()
	if p.at(TokenNoSubstTemplate) {
		p.bump(TokenNoSubstTemplate)
		c := m.Complete(p, KindTemplate)
		return &c
	}
	p.bump(TokenTemplateHead)
	for {
		s := p.Start()
		if p.parseExpr() == nil {
			p.errHere("expected an expression in template substitution")
		}
		s.Complete(p, KindTemplateSubst)

		if !p.at(TokenRBrace) {
			p.errHere("expected '}' to continue the template literal")
			break
		}
		kind := p.source.ReLex(LexTemplateContinue)
		if kind == TokenTemplateMiddle {
			p.bump(TokenTemplateMiddle)
			continue
		}
		if kind == TokenTemplateTail {
			p.bump(TokenTemplateTail)
		} else {
			p.errHere("unterminated template literal")
		}
		break
	}
	c := m.Complete(p, KindTemplate)
	return &c
}

// --- arrow functions ---

// atArrowFunction decides whether an arrow function starts here using
// fixed lookahead for the identifier form and a paren scan for the
// parameter-list form.
func (p *Parser) atArrowFunction() bool {
	if p.at(TokenAsync) && !p.hasLineBreakAfterNext() {
		if p.nthAt(1, TokenArrow) {
			return false // `async => x` treats async as a parameter name
		}
		k := p.source.Nth(1)
		if (k == TokenIdent || k.IsContextualKeyword()) && p.nthAt(2, TokenArrow) {
			return true
		}
		if k == TokenLParen {
			return p.parenArrowAhead(1)
		}
	}
	if p.atIdentLike() && p.nthAt(1, TokenArrow) {
		return true
	}
	if p.at(TokenLParen) {
		return p.parenArrowAhead(0)
	}
	return false
}

// parenArrowAhead scans ahead from an opening parenthesis to the
// matching close and reports whether an arrow follows. The scan is
// bounded by the parameter list it inspects, so parsing stays linear
// in practice.
func (p *Parser) parenArrowAhead(start int) bool {
	depth := 0
	for i := start; ; i++ {
		switch p.source.Nth(i) {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return p.source.Nth(i+1) == TokenArrow
			}
		case TokenEOF:
			return false
		case TokenLBrace, TokenSemicolon:
			// Parameter lists never contain statement braces or
			// semicolons at depth one; object destructuring keeps the
			// scan going only when nested in parens.
			if depth == 0 {
				return false
			}
		}
		if i-start > 255 {
			return false
		}
	}
}

func (p *Parser) parseArrowFunction() *CompletedMarker {
	m := p.Start()
	defer p.pushState()()
	async := false
	if p.at(TokenAsync) && !p.nthAt(1, TokenArrow) {
		p.bump(TokenAsync)
		async = true
	}
	p.state.inAsync = async
	p.state.inGenerator = false

	if p.at(TokenLParen) {
		p.parseParameters()
	} else {
		// Single-identifier parameter without parentheses.
		params := p.Start()
		param := p.Start()
		if p.atIdentLike() {
			p.bumpAny()
		} else {
			p.errHere("expected a parameter name")
		}
		param.Complete(p, KindParameter)
		params.Complete(p, KindParameters)
	}

	p.expect(TokenArrow)

	p.state.inFunction = true
	p.state.inIteration = false
	if p.at(TokenLBrace) {
		p.parseBlock()
	} else if p.parseAssignExpr() == nil {
		p.errHere("expected an arrow function body")
	}
	c := m.Complete(p, KindArrowFunction)
	return &c
}

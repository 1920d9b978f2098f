package parser

import "strings"

// Span is a half-open byte range into the source buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Position is a 1-based line/column location, derived from a Span
// via the line index kept on the parse result.
type Position struct {
	Line   int
	Column int
}

type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
)

var triviaKindNames = map[TriviaKind]string{
	TriviaWhitespace:   "Whitespace",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
}

func (k TriviaKind) String() string {
	if name, ok := triviaKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Trivia is a piece of source text that carries no grammar meaning:
// whitespace, a comment, or text skipped during error recovery. Trivia
// is attached to tokens so the tree reproduces the source exactly.
type Trivia struct {
	Kind TriviaKind
	Span Span
	Text string
}

// ContainsNewline reports whether the trivia piece spans a line break.
// The token source uses this to decide leading vs. trailing attachment.
func (t Trivia) ContainsNewline() bool {
	return strings.ContainsAny(t.Text, "\n\r")
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenUnknown
	TokenWhitespace
	TokenLineComment
	TokenBlockComment

	// Literals
	TokenIdent
	TokenPrivateName
	TokenNumber
	TokenString
	TokenRegex
	TokenNoSubstTemplate
	TokenTemplateHead
	TokenTemplateMiddle
	TokenTemplateTail
	TokenJSXText

	// Reserved words
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenEnum
	TokenExport
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceof
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith
	TokenYield

	// Contextual keywords
	TokenLet
	TokenStatic
	TokenAsync
	TokenAwait
	TokenOf
	TokenGet
	TokenSet
	TokenAs
	TokenFrom

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenQuestion
	TokenQuestionDot
	TokenColon
	TokenArrow

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenStrictEQ
	TokenStrictNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNullish
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenStarStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenStarStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenNullishAssign
	TokenBitAndAssign
	TokenBitOrAssign
	TokenBitXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:             "EOF",
	TokenUnknown:         "Unknown",
	TokenWhitespace:      "Whitespace",
	TokenLineComment:     "LineComment",
	TokenBlockComment:    "BlockComment",
	TokenIdent:           "Identifier",
	TokenPrivateName:     "PrivateName",
	TokenNumber:          "Number",
	TokenString:          "String",
	TokenRegex:           "Regex",
	TokenNoSubstTemplate: "Template",
	TokenTemplateHead:    "TemplateHead",
	TokenTemplateMiddle:  "TemplateMiddle",
	TokenTemplateTail:    "TemplateTail",
	TokenJSXText:         "JSXText",
	TokenBreak:           "break",
	TokenCase:            "case",
	TokenCatch:           "catch",
	TokenClass:           "class",
	TokenConst:           "const",
	TokenContinue:        "continue",
	TokenDebugger:        "debugger",
	TokenDefault:         "default",
	TokenDelete:          "delete",
	TokenDo:              "do",
	TokenElse:            "else",
	TokenEnum:            "enum",
	TokenExport:          "export",
	TokenExtends:         "extends",
	TokenFalse:           "false",
	TokenFinally:         "finally",
	TokenFor:             "for",
	TokenFunction:        "function",
	TokenIf:              "if",
	TokenImport:          "import",
	TokenIn:              "in",
	TokenInstanceof:      "instanceof",
	TokenNew:             "new",
	TokenNull:            "null",
	TokenReturn:          "return",
	TokenSuper:           "super",
	TokenSwitch:          "switch",
	TokenThis:            "this",
	TokenThrow:           "throw",
	TokenTrue:            "true",
	TokenTry:             "try",
	TokenTypeof:          "typeof",
	TokenVar:             "var",
	TokenVoid:            "void",
	TokenWhile:           "while",
	TokenWith:            "with",
	TokenYield:           "yield",
	TokenLet:             "let",
	TokenStatic:          "static",
	TokenAsync:           "async",
	TokenAwait:           "await",
	TokenOf:              "of",
	TokenGet:             "get",
	TokenSet:             "set",
	TokenAs:              "as",
	TokenFrom:            "from",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
	TokenLBracket:        "[",
	TokenRBracket:        "]",
	TokenSemicolon:       ";",
	TokenComma:           ",",
	TokenDot:             ".",
	TokenEllipsis:        "...",
	TokenQuestion:        "?",
	TokenQuestionDot:     "?.",
	TokenColon:           ":",
	TokenArrow:           "=>",
	TokenAssign:          "=",
	TokenEQ:              "==",
	TokenNE:              "!=",
	TokenStrictEQ:        "===",
	TokenStrictNE:        "!==",
	TokenLT:              "<",
	TokenLE:              "<=",
	TokenGT:              ">",
	TokenGE:              ">=",
	TokenAnd:             "&&",
	TokenOr:              "||",
	TokenNullish:         "??",
	TokenNot:             "!",
	TokenBitAnd:          "&",
	TokenBitOr:           "|",
	TokenBitXor:          "^",
	TokenBitNot:          "~",
	TokenShl:             "<<",
	TokenShr:             ">>",
	TokenUShr:            ">>>",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenStar:            "*",
	TokenStarStar:        "**",
	TokenSlash:           "/",
	TokenPercent:         "%",
	TokenIncrement:       "++",
	TokenDecrement:       "--",
	TokenPlusAssign:      "+=",
	TokenMinusAssign:     "-=",
	TokenStarAssign:      "*=",
	TokenStarStarAssign:  "**=",
	TokenSlashAssign:     "/=",
	TokenPercentAssign:   "%=",
	TokenAndAssign:       "&&=",
	TokenOrAssign:        "||=",
	TokenNullishAssign:   "??=",
	TokenBitAndAssign:    "&=",
	TokenBitOrAssign:     "|=",
	TokenBitXorAssign:    "^=",
	TokenShlAssign:       "<<=",
	TokenShrAssign:       ">>=",
	TokenUShrAssign:      ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether the lexer unit never reaches the parser as a
// meaningful token.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenLineComment, TokenBlockComment:
		return true
	}
	return false
}

// IsKeyword reports whether the kind is a reserved word (not a
// contextual keyword).
func (k TokenKind) IsKeyword() bool {
	return k >= TokenBreak && k <= TokenYield
}

// IsContextualKeyword reports whether the kind is a keyword only in
// certain positions and an ordinary identifier everywhere else.
func (k TokenKind) IsContextualKeyword() bool {
	return k >= TokenLet && k <= TokenFrom
}

// Token is an immutable lexical unit with the trivia that surrounds it.
// The Literal holds exactly the token's own source bytes; Leading and
// Trailing hold the attached trivia so that leading + literal + trailing,
// concatenated over all tokens, reproduces the input byte for byte.
type Token struct {
	Kind     TokenKind
	Span     Span
	Literal  string
	Leading  []Trivia
	Trailing []Trivia
}

// Text returns the token with its trivia, exactly as written.
func (t Token) Text() string {
	var sb strings.Builder
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.Literal)
	for _, tr := range t.Trailing {
		sb.WriteString(tr.Text)
	}
	return sb.String()
}

// FullSpan covers the token and all attached trivia.
func (t Token) FullSpan() Span {
	span := t.Span
	for _, tr := range t.Leading {
		span = span.Cover(tr.Span)
	}
	for _, tr := range t.Trailing {
		span = span.Cover(tr.Span)
	}
	return span
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"yield":      TokenYield,
	"let":        TokenLet,
	"static":     TokenStatic,
	"async":      TokenAsync,
	"await":      TokenAwait,
	"of":         TokenOf,
	"get":        TokenGet,
	"set":        TokenSet,
	"as":         TokenAs,
	"from":       TokenFrom,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

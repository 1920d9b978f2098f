package parser

// SyntaxKind tags interior tree nodes. Grammar alternation is expressed
// as closed sets of kinds checked by the typed layer, not as a type
// hierarchy.
type SyntaxKind int

const (
	// KindTombstone marks an abandoned start event. It never appears in
	// a finished tree; the sink skips it.
	KindTombstone SyntaxKind = iota
	// KindError wraps tokens skipped during error recovery.
	KindError

	KindScript
	KindModule

	// Expressions
	KindIdentifier
	KindLiteral
	KindRegexLiteral
	KindTemplate
	KindTemplateSubst
	KindTaggedTemplate
	KindArrayExpr
	KindObjectExpr
	KindProperty
	KindSpread
	KindParenExpr
	KindUnaryExpr
	KindUpdateExpr
	KindBinaryExpr
	KindLogicalExpr
	KindInExpr
	KindInstanceofExpr
	KindTernaryExpr
	KindAssignExpr
	KindSequenceExpr
	KindArrowFunction
	KindFunctionExpr
	KindClassExpr
	KindCallExpr
	KindArguments
	KindNewExpr
	KindMemberExpr
	KindIndexExpr
	KindAwaitExpr
	KindYieldExpr

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindVarStmt
	KindVarDecl
	KindVarDeclarator
	KindIfStmt
	KindForStmt
	KindForInStmt
	KindForOfStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindTryStmt
	KindCatchClause
	KindFinallyClause
	KindThrowStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindLabeledStmt
	KindDebuggerStmt
	KindWithStmt

	// Declarations
	KindFunctionDecl
	KindParameters
	KindParameter
	KindClassDecl
	KindClassBody
	KindMethod
	KindFieldDef
	KindImportDecl
	KindImportSpecifier
	KindNamedImports
	KindNamespaceImport
	KindExportDecl
	KindExportSpecifier
	KindNamedExports

	// JSX (enabled by the Jsx option)
	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXExprContainer
)

var syntaxKindNames = map[SyntaxKind]string{
	KindTombstone:         "Tombstone",
	KindError:             "Error",
	KindScript:            "Script",
	KindModule:            "Module",
	KindIdentifier:        "Identifier",
	KindLiteral:           "Literal",
	KindRegexLiteral:      "RegexLiteral",
	KindTemplate:          "Template",
	KindTemplateSubst:     "TemplateSubst",
	KindTaggedTemplate:    "TaggedTemplate",
	KindArrayExpr:         "ArrayExpr",
	KindObjectExpr:        "ObjectExpr",
	KindProperty:          "Property",
	KindSpread:            "Spread",
	KindParenExpr:         "ParenExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindUpdateExpr:        "UpdateExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindLogicalExpr:       "LogicalExpr",
	KindInExpr:            "InExpr",
	KindInstanceofExpr:    "InstanceofExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindAssignExpr:        "AssignExpr",
	KindSequenceExpr:      "SequenceExpr",
	KindArrowFunction:     "ArrowFunction",
	KindFunctionExpr:      "FunctionExpr",
	KindClassExpr:         "ClassExpr",
	KindCallExpr:          "CallExpr",
	KindArguments:         "Arguments",
	KindNewExpr:           "NewExpr",
	KindMemberExpr:        "MemberExpr",
	KindIndexExpr:         "IndexExpr",
	KindAwaitExpr:         "AwaitExpr",
	KindYieldExpr:         "YieldExpr",
	KindBlock:             "Block",
	KindEmptyStmt:         "EmptyStmt",
	KindExprStmt:          "ExprStmt",
	KindVarStmt:           "VarStmt",
	KindVarDecl:           "VarDecl",
	KindVarDeclarator:     "VarDeclarator",
	KindIfStmt:            "IfStmt",
	KindForStmt:           "ForStmt",
	KindForInStmt:         "ForInStmt",
	KindForOfStmt:         "ForOfStmt",
	KindWhileStmt:         "WhileStmt",
	KindDoStmt:            "DoStmt",
	KindSwitchStmt:        "SwitchStmt",
	KindSwitchCase:        "SwitchCase",
	KindTryStmt:           "TryStmt",
	KindCatchClause:       "CatchClause",
	KindFinallyClause:     "FinallyClause",
	KindThrowStmt:         "ThrowStmt",
	KindReturnStmt:        "ReturnStmt",
	KindBreakStmt:         "BreakStmt",
	KindContinueStmt:      "ContinueStmt",
	KindLabeledStmt:       "LabeledStmt",
	KindDebuggerStmt:      "DebuggerStmt",
	KindWithStmt:          "WithStmt",
	KindFunctionDecl:      "FunctionDecl",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindClassDecl:         "ClassDecl",
	KindClassBody:         "ClassBody",
	KindMethod:            "Method",
	KindFieldDef:          "FieldDef",
	KindImportDecl:        "ImportDecl",
	KindImportSpecifier:   "ImportSpecifier",
	KindNamedImports:      "NamedImports",
	KindNamespaceImport:   "NamespaceImport",
	KindExportDecl:        "ExportDecl",
	KindExportSpecifier:   "ExportSpecifier",
	KindNamedExports:      "NamedExports",
	KindJSXElement:        "JSXElement",
	KindJSXOpeningElement: "JSXOpeningElement",
	KindJSXClosingElement: "JSXClosingElement",
	KindJSXAttribute:      "JSXAttribute",
	KindJSXExprContainer:  "JSXExprContainer",
}

func (k SyntaxKind) String() string {
	if name, ok := syntaxKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsRoot reports whether the kind can only appear at the top of a tree.
func (k SyntaxKind) IsRoot() bool {
	return k == KindScript || k == KindModule
}

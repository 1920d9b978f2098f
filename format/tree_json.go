package format

import (
	"encoding/json"

	"github.com/glintjs/glint/js/parser"
)

// MarshalTree renders a syntax tree as nested JSON, one object per node
// or token. Token objects carry their text; trivia is kept so the dump
// stays lossless.
func MarshalTree(root *parser.SyntaxNode) ([]byte, error) {
	return json.MarshalIndent(buildTreeData(root), "", "  ")
}

type jsonNode struct {
	Kind     string        `json:"kind"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Children []interface{} `json:"children,omitempty"`
}

type jsonToken struct {
	Token string `json:"token"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	// FullStart/FullEnd cover the attached trivia as well.
	FullStart int    `json:"fullStart"`
	FullEnd   int    `json:"fullEnd"`
	Text      string `json:"text"`
	Leading   string `json:"leading,omitempty"`
	Trailing  string `json:"trailing,omitempty"`
}

func buildTreeData(n *parser.SyntaxNode) jsonNode {
	out := jsonNode{
		Kind:  n.Kind().String(),
		Start: n.Span().Start,
		End:   n.Span().End,
	}
	for _, c := range n.Children() {
		switch child := c.(type) {
		case *parser.SyntaxNode:
			out.Children = append(out.Children, buildTreeData(child))
		case *parser.SyntaxToken:
			out.Children = append(out.Children, buildTokenData(child))
		}
	}
	return out
}

func buildTokenData(t *parser.SyntaxToken) jsonToken {
	full := t.Token.FullSpan()
	out := jsonToken{
		Token:     t.Kind().String(),
		Start:     t.Span().Start,
		End:       t.Span().End,
		FullStart: full.Start,
		FullEnd:   full.End,
		Text:      t.Text(),
	}
	for _, tr := range t.Token.Leading {
		out.Leading += tr.Text
	}
	for _, tr := range t.Token.Trailing {
		out.Trailing += tr.Text
	}
	return out
}

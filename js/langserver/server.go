// Package langserver exposes the parser and lint rules over the
// Language Server Protocol. Documents are kept in memory and
// re-analyzed on every change; diagnostics are pushed to the client.
package langserver

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/glintjs/glint/config"
	"github.com/glintjs/glint/js/analyze"
	"github.com/glintjs/glint/js/parser"
)

const lsName = "glint"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	cfg  *config.Config
	docs map[string][]byte
}

func New(version string) *Server {
	s := &Server{
		version: version,
		cfg:     config.Default(),
		docs:    map[string][]byte{},
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	if cfg, err := config.Load(rootDir); err == nil {
		s.mu.Lock()
		s.cfg = cfg
		s.mu.Unlock()
	}

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.updateDocument(ctx, params.TextDocument.URI, path, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.updateDocument(ctx, params.TextDocument.URI, path, []byte(whole.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, path)
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.updateDocument(ctx, params.TextDocument.URI, path, []byte(*params.Text))
	return nil
}

// updateDocument stores the new content, re-analyzes it, and pushes the
// combined parse and lint diagnostics.
func (s *Server) updateDocument(ctx *glsp.Context, uri string, path string, content []byte) {
	s.mu.Lock()
	s.docs[path] = content
	cfg := s.cfg
	s.mu.Unlock()

	result := parser.Parse(content, cfg.ParserOptions(path)...)

	var rules []analyze.Rule
	for _, rule := range analyze.DefaultRules() {
		if cfg.RuleEnabled(rule.Name()) {
			rules = append(rules, rule)
		}
	}
	var findings []analyze.Finding
	if len(rules) > 0 {
		findings = analyze.Run(result.Root, rules...)
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(result.Diagnostics)+len(findings))
	for _, d := range result.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(d, result.Lines, nil))
	}
	for _, f := range findings {
		diagnostics = append(diagnostics, toProtocolDiagnostic(f.Diagnostic, result.Lines, &f.Rule))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolDiagnostic(d parser.Diagnostic, lines *parser.LineIndex, code *string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	switch d.Severity {
	case parser.SeverityWarning:
		severity = protocol.DiagnosticSeverityWarning
	case parser.SeverityInfo:
		severity = protocol.DiagnosticSeverityInformation
	}

	source := lsName
	out := protocol.Diagnostic{
		Range:    toProtocolRange(d.Span, lines),
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
	if code != nil {
		out.Code = &protocol.IntegerOrString{Value: *code}
	}
	return out
}

func toProtocolRange(span parser.Span, lines *parser.LineIndex) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(span.Start, lines),
		End:   toProtocolPosition(span.End, lines),
	}
}

func toProtocolPosition(offset int, lines *parser.LineIndex) protocol.Position {
	pos := lines.Position(offset)
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(pos.Column - 1),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}

// Package lsp adapts the verification pipeline to the Language Server
// Protocol: open/save a fixture document, reverify it, and republish the
// counterexamples (or their absence) as diagnostics.
package lsp

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"svirpti/internal/counterexample"
	"svirpti/internal/diagnostics"
	"svirpti/internal/fixture"
	"svirpti/internal/solver"
	"svirpti/internal/verifier"
)

// SolverFactory opens a fresh solver session for one verification run. In
// production this dials a Z3 subprocess; tests supply a factory that
// returns a solver.Fake.
type SolverFactory func(ctx context.Context) (solver.Solver, error)

// Handler implements the subset of the LSP server interface a fixture
// verifier needs: no completion or semantic tokens, since a YAML fixture
// has no surface syntax to colorize.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string

	newSolver SolverFactory
}

// NewHandler creates a handler that opens solver sessions via newSolver.
func NewHandler(newSolver SolverFactory) *Handler {
	return &Handler{content: make(map[string]string), newSolver: newSolver}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("svirpti-lsp Initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
				Save:      ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("svirpti-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("svirpti-lsp Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.reverify(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	return h.reverify(ctx, params.TextDocument.URI, change.Text)
}

func (h *Handler) TextDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	return h.reverify(ctx, params.TextDocument.URI, *params.Text)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

// reverify parses and verifies the given document text and publishes
// whatever diagnostics that run produces (possibly none, clearing any
// that a previous version of the document had).
func (h *Handler) reverify(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("converting URI %s: %w", uri, err)
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	diags, err := h.verify(text)
	if err != nil {
		log.Printf("verifying %s: %v", path, err)
		return nil
	}
	sendDiagnosticNotification(ctx, uri, diags)
	return nil
}

func (h *Handler) verify(text string) ([]protocol.Diagnostic, error) {
	program, err := fixture.Parse([]byte(text))
	if err != nil {
		return nil, err
	}

	background := context.Background()
	sv, err := h.newSolver(background)
	if err != nil {
		return nil, fmt.Errorf("opening solver: %w", err)
	}
	defer sv.Close()

	vctx := verifier.NewStringContext()
	result, err := verifier.Verify(background, program, vctx, sv)
	if err != nil {
		return nil, err
	}
	if result.Success() {
		return nil, nil
	}

	errs, err := counterexample.GetAllErrors(background, result.Failure, vctx, result.Lowered)
	if err != nil {
		return nil, err
	}
	return diagnostics.ToDiagnostics(errs), nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diags []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

package main

import (
	"context"
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"svirpti/internal/lsp"
	"svirpti/internal/solver"
)

const lsName = "svirpti"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	handler := lsp.NewHandler(func(ctx context.Context) (solver.Solver, error) {
		return solver.NewZ3(ctx, solver.DefaultConfig())
	})

	protocolHandler := protocol.Handler{
		Initialize:            handler.Initialize,
		Initialized:           handler.Initialized,
		Shutdown:              handler.Shutdown,
		TextDocumentDidOpen:   handler.TextDocumentDidOpen,
		TextDocumentDidChange: handler.TextDocumentDidChange,
		TextDocumentDidSave:   handler.TextDocumentDidSave,
		TextDocumentDidClose:  handler.TextDocumentDidClose,
	}

	s := server.NewServer(&protocolHandler, lsName, false)

	log.Println("Starting svirpti LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting svirpti LSP server:", err)
		os.Exit(1)
	}
}

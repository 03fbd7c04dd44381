// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lsp publishes type-checker diagnostics to an editor over the
// Language Server Protocol. It speaks just enough of the protocol to
// receive didOpen/didChange notifications for a crate document and push
// back textDocument/publishDiagnostics; it implements no other LSP
// capability (no completion, no hover, no go-to-definition).
package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/zkc-lang/zkc/pkg/crate"
	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/typecheck"
)

// Server is a minimal LSP server over a single rwc (typically stdio): it
// answers initialize, and on every didOpen/didChange re-runs the type
// checker over the document's contents and publishes the result.
type Server struct {
	logger *zap.Logger
	conn   jsonrpc2.Conn
}

// NewServer wires an LSP server over rwc, logging protocol traffic through
// logger.
func NewServer(rwc io.ReadWriteCloser, logger *zap.Logger) *Server {
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)

	s := &Server{logger: logger, conn: conn}
	conn.Go(context.Background(), s.handle)

	return s
}

// Run blocks until the underlying connection is closed.
func (s *Server) Run(ctx context.Context) error {
	<-s.conn.Done()
	return s.conn.Err()
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncKindFull,
			},
		}, nil)
	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		s.publish(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))

		return nil
	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		if len(params.ContentChanges) > 0 {
			s.publish(ctx, params.TextDocument.URI, []byte(params.ContentChanges[len(params.ContentChanges)-1].Text))
		}

		return nil
	default:
		if req.IsCall() {
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}

		return nil
	}
}

// publish re-type-checks the document's bytes (a serialised crate.Crate)
// and pushes the resulting diagnostics back to the client.
func (s *Server) publish(ctx context.Context, docURI uri.URI, contents []byte) {
	interner, funcIds, err := crate.Load(bytes.NewReader(contents))
	if err != nil {
		s.logger.Warn("failed to load crate", zap.Error(err))
		return
	}

	diags := typecheck.CheckCrate(interner, funcIds)

	lspDiags := make([]protocol.Diagnostic, len(diags))
	for i, d := range diags {
		lspDiags[i] = toProtocolDiagnostic(d)
	}

	_ = s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: lspDiags,
	})
}

func toProtocolDiagnostic(d diagnostics.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: uint32(d.Span.Start())},
			End:   protocol.Position{Line: 0, Character: uint32(d.Span.End())},
		},
		Severity: severity,
		Source:   "zkc",
		Message:  d.Error(),
	}
}

func unmarshalParams(req jsonrpc2.Request, v any) error {
	return json.Unmarshal(req.Params(), v)
}

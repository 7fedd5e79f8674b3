package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/frontend"
	"github.com/reflectrpteam/luau/internal/sourcescan"
)

// Server is the stdio JSON-RPC loop: Content-Length-framed request/
// notification reading (grounded directly on the teacher's
// cmd/lsp/server.go Start/handleMessage), dispatching into a single
// Frontend shared across every open document. Unlike the teacher's
// LanguageServer, there is no hover/definition/completion surface here
// — spec.md §1 lists "editor tooling (autocomplete, hover types)" as a
// client this module serves, not a feature this command itself must
// implement beyond diagnostics; hover/completion would consume
// Module.ExprTypes/AnnotationTypes the same way, left for a later pass.
type Server struct {
	mu       sync.Mutex
	fe       *frontend.Frontend
	writer   io.Writer
	contents map[string]string // uri -> last-known text, for didChange full-sync
}

func NewServer(writer io.Writer) *Server {
	if writer == nil {
		writer = os.Stdout
	}
	return &Server{
		fe:       frontend.New(config.FeatureFlags{}, config.DefaultLimits()),
		writer:   writer,
		contents: make(map[string]string),
	}
}

func (s *Server) Start() {
	reader := bufio.NewReader(os.Stdin)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("error reading header: %v", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("error parsing Content-Length: %v", err)
			continue
		}
		for {
			sep, err := reader.ReadString('\n')
			if err != nil {
				log.Printf("error reading header separator: %v", err)
				return
			}
			if strings.TrimRight(sep, "\r\n") == "" {
				break
			}
		}
		content := make([]byte, n)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("error reading message body: %v", err)
			return
		}
		if err := s.handleMessage(content); err != nil {
			log.Printf("error handling message: %v", err)
		}
	}
}

func (s *Server) handleMessage(content []byte) error {
	var base struct {
		ID     interface{}     `json:"id,omitempty"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(content, &base); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	switch base.Method {
	case "initialize":
		return s.handleInitialize(base.ID)
	case "shutdown":
		return s.sendResponse(base.ID, nil)
	case "exit":
		os.Exit(0)
		return nil
	case "textDocument/didOpen":
		var params DidOpenParams
		if err := json.Unmarshal(base.Params, &params); err != nil {
			return err
		}
		return s.openDocument(params.TextDocument.URI, params.TextDocument.Text)
	case "textDocument/didChange":
		var params DidChangeParams
		if err := json.Unmarshal(base.Params, &params); err != nil {
			return err
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		return s.openDocument(params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text)
	case "textDocument/didClose":
		var params DidCloseParams
		if err := json.Unmarshal(base.Params, &params); err != nil {
			return err
		}
		s.mu.Lock()
		delete(s.contents, params.TextDocument.URI)
		s.mu.Unlock()
		return nil
	default:
		// Unhandled methods are silently ignored, matching LSP's own
		// contract that servers may no-op on capabilities they did not
		// advertise; only requests (carrying an ID) get an error back.
		if base.ID != nil {
			return s.sendError(base.ID, -32601, "method not found: "+base.Method)
		}
		return nil
	}
}

func (s *Server) handleInitialize(id interface{}) error {
	result := InitializeResult{
		Capabilities: ServerCapabilities{TextDocumentSync: 1, HoverProvider: false},
	}
	return s.sendResponse(id, result)
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// openDocument registers (or re-registers) uri's text with the shared
// Frontend, runs a Check, and publishes the resulting diagnostics —
// didOpen and didChange share this path since both hand over the
// document's complete text under this server's full-sync capability.
func (s *Server) openDocument(uri, text string) error {
	s.mu.Lock()
	s.contents[uri] = text
	s.mu.Unlock()

	path := uriToPath(uri)
	program := sourcescan.Scan(path, text)
	s.fe.AddSource(path, program)

	result, err := s.fe.Check(frontend.NewRequest(path, frontend.ViewNormal))
	if err != nil {
		return err
	}
	return s.publishDiagnostics(uri, result.Errors)
}

func (s *Server) publishDiagnostics(uri string, errs []*diagnostics.TypeError) error {
	lsp := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		line, col := e.Location.Line, e.Location.Column
		lsp = append(lsp, Diagnostic{
			Range: Range{
				Start: Position{Line: line - 1, Character: col - 1},
				End:   Position{Line: line - 1, Character: col},
			},
			Severity: SeverityError,
			Message:  e.Error(),
			Source:   "luaucheck",
		})
	}
	return s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{URI: uri, Diagnostics: lsp})
}

func (s *Server) sendResponse(id interface{}, result interface{}) error {
	return s.sendMessage(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id interface{}, code int, message string) error {
	return s.sendMessage(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}})
}

func (s *Server) sendNotification(method string, params interface{}) error {
	return s.sendMessage(NotificationMessage{Jsonrpc: "2.0", Method: method, Params: params})
}

func (s *Server) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}

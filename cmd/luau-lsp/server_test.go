package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func frame(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

func readFramedMessages(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	s := buf.String()
	for len(s) > 0 {
		const prefix = "Content-Length: "
		if !strings.HasPrefix(s, prefix) {
			t.Fatalf("expected Content-Length header, got %q", s)
		}
		nl := strings.Index(s, "\r\n\r\n")
		if nl < 0 {
			t.Fatalf("malformed frame: %q", s)
		}
		var n int
		if _, err := fmt.Sscanf(s[len(prefix):nl], "%d", &n); err != nil {
			t.Fatal(err)
		}
		body := s[nl+4 : nl+4+n]
		var msg map[string]interface{}
		if err := json.Unmarshal([]byte(body), &msg); err != nil {
			t.Fatal(err)
		}
		out = append(out, msg)
		s = s[nl+4+n:]
	}
	return out
}

func TestHandleInitializeRespondsWithCapabilities(t *testing.T) {
	var out bytes.Buffer
	s := NewServer(&out)
	if err := s.handleMessage([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)); err != nil {
		t.Fatal(err)
	}
	msgs := readFramedMessages(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 response, got %d", len(msgs))
	}
	if msgs[0]["id"].(float64) != 1 {
		t.Fatalf("expected the response to echo request id 1, got %v", msgs[0]["id"])
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := NewServer(&out)
	params := DidOpenParams{TextDocument: TextDocumentItem{URI: "file:///a.luau", Text: "--!strict\n"}}
	body, _ := json.Marshal(params)
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":%s}`, body)
	if err := s.handleMessage([]byte(msg)); err != nil {
		t.Fatal(err)
	}
	msgs := readFramedMessages(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 publishDiagnostics notification, got %d", len(msgs))
	}
	if msgs[0]["method"] != "textDocument/publishDiagnostics" {
		t.Fatalf("expected a publishDiagnostics notification, got %+v", msgs[0])
	}
}

func TestUnknownMethodRequestGetsErrorResponse(t *testing.T) {
	var out bytes.Buffer
	s := NewServer(&out)
	if err := s.handleMessage([]byte(`{"jsonrpc":"2.0","id":2,"method":"textDocument/completion"}`)); err != nil {
		t.Fatal(err)
	}
	msgs := readFramedMessages(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 error response, got %d", len(msgs))
	}
	if msgs[0]["error"] == nil {
		t.Fatalf("expected an error field for an unhandled method, got %+v", msgs[0])
	}
}

func TestUriToPathStripsFileScheme(t *testing.T) {
	if got := uriToPath("file:///home/x/a.luau"); got != "/home/x/a.luau" {
		t.Fatalf("expected the file:// scheme stripped, got %q", got)
	}
	if got := uriToPath("/already/a/path"); got != "/already/a/path" {
		t.Fatalf("expected a bare path to pass through unchanged, got %q", got)
	}
}

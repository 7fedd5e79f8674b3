// Package sourcescan is the shared boundary stub both cmd/luaucheck and
// cmd/luau-lsp sit behind: spec.md's Non-goals name the parser that
// produces the AST as an external collaborator, so neither command
// implements one. Scan extracts exactly what spec.md §6's mode
// selection needs — a file's leading "--"-prefixed header — and wraps
// the rest of the file in an empty Program.Body, the honest limit of
// what either command can do without a real Luau parser plugged in.
package sourcescan

import (
	"bufio"
	"strings"

	"github.com/reflectrpteam/luau/internal/ast"
)

// Scan extracts file's leading hot-comment header and returns a Program
// with that header and an empty Body.
func Scan(file string, source string) *ast.Program {
	var comments []ast.HotComment
	scanner := bufio.NewScanner(strings.NewReader(source))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !strings.HasPrefix(text, "--") {
			break
		}
		comments = append(comments, ast.HotComment{
			Text: text,
			Pos:  ast.Position{Line: line, Column: 1},
		})
	}
	return &ast.Program{
		File:        file,
		Body:        &ast.Block{},
		HotComments: comments,
	}
}

// HotCommentTexts projects a Program's HotComments down to their Text
// fields, the shape config.ModeFromHotComments expects.
func HotCommentTexts(program *ast.Program) []string {
	out := make([]string, len(program.HotComments))
	for i, c := range program.HotComments {
		out[i] = c.Text
	}
	return out
}

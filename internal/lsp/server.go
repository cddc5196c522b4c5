package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/builder"
	"github.com/frederikprijck/ng-morph/internal/parser"
	"github.com/frederikprijck/ng-morph/internal/template"
)

type JsonRpcMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *JsonRpcError   `json:"error,omitempty"`
}

type JsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type HoverParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Hover struct {
	Contents any `json:"contents"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type RenameParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	NewName      string                 `json:"newName"`
}

type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// openFile is the per-URI state: the raw tree for position queries and the
// mutable tree for edits, both over the same token sequence.
type openFile struct {
	result *parser.ParseResult
	doc    *template.Document
}

var openFiles = map[string]*openFile{}

func RunServer() {
	reader := bufio.NewReader(os.Stdin)
	for {
		msg, err := readMessage(reader)
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading message: %v\n", err)
			continue
		}

		handleMessage(msg)
	}
}

func readMessage(reader *bufio.Reader) (*JsonRpcMessage, error) {
	var contentLength int
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if line == "\r\n" {
			break
		}
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &contentLength); err == nil {
			continue
		}
	}

	body := make([]byte, contentLength)
	_, err := io.ReadFull(reader, body)
	if err != nil {
		return nil, err
	}

	var msg JsonRpcMessage
	err = json.Unmarshal(body, &msg)
	return &msg, err
}

func handleMessage(msg *JsonRpcMessage) {
	switch msg.Method {
	case "initialize":
		respond(msg.ID, map[string]any{
			"capabilities": map[string]any{
				"textDocumentSync": 1, // Full sync
				"hoverProvider":    true,
				"renameProvider":   true,
			},
		})
	case "initialized":
		// Do nothing
	case "shutdown":
		respond(msg.ID, nil)
	case "exit":
		os.Exit(0)
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err == nil {
			updateFile(params.TextDocument.URI, params.TextDocument.Text)
		}
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err == nil && len(params.ContentChanges) > 0 {
			updateFile(params.TextDocument.URI, params.ContentChanges[0].Text)
		}
	case "textDocument/hover":
		var params HoverParams
		if err := json.Unmarshal(msg.Params, &params); err == nil {
			respond(msg.ID, handleHover(params))
		} else {
			respond(msg.ID, nil)
		}
	case "textDocument/rename":
		var params RenameParams
		if err := json.Unmarshal(msg.Params, &params); err == nil {
			respond(msg.ID, handleRename(params))
		} else {
			respond(msg.ID, nil)
		}
	}
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func updateFile(uri, text string) {
	res, err := parser.Parse(uriToPath(uri), text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", uri, err)
		delete(openFiles, uri)
		return
	}
	openFiles[uri] = &openFile{result: res, doc: builder.Build(res)}
}

func handleHover(params HoverParams) *Hover {
	file, ok := openFiles[params.TextDocument.URI]
	if !ok {
		return nil
	}
	offset, ok := offsetAt(file.doc.Text(), params.Position)
	if !ok {
		return nil
	}

	path := parser.FindNode(file.result.Nodes, offset)
	if len(path.Path) == 0 {
		return nil
	}

	var parts []string
	for _, n := range path.Path {
		parts = append(parts, describeRawNode(n))
	}
	content := strings.Join(parts, " > ")

	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: content,
		},
	}
}

func describeRawNode(n parser.Node) string {
	switch rn := n.(type) {
	case *parser.Element:
		return fmt.Sprintf("**Element** `<%s>`", rn.Name)
	case *parser.Attribute:
		return fmt.Sprintf("**Attribute** `%s`", rn.Name)
	case *parser.Text:
		if rn.IsInterpolation() {
			return fmt.Sprintf("**Interpolation** `{{%s}}`", rn.Value)
		}
		return "**Text**"
	case *parser.Comment:
		return "**Comment**"
	case *parser.Expansion:
		return fmt.Sprintf("**Expansion** `%s, %s`", rn.SwitchValue, rn.FormType)
	case *parser.ExpansionCase:
		return fmt.Sprintf("**Case** `%s`", rn.Value)
	default:
		return "**Node**"
	}
}

// handleRename renames the tag of the innermost element containing the
// cursor. The edit goes through the mutation protocol, so the re-rendered
// document keeps every other offset consistent.
func handleRename(params RenameParams) *WorkspaceEdit {
	file, ok := openFiles[params.TextDocument.URI]
	if !ok {
		return nil
	}
	oldText := file.doc.Text()
	offset, ok := offsetAt(oldText, params.Position)
	if !ok {
		return nil
	}

	el := elementAt(file.doc, offset)
	if el == nil {
		return nil
	}
	el.ChangeTagName(params.NewName)
	newText := file.doc.Text()

	// Full-document edit; the client applies it and sends didChange.
	edit := &WorkspaceEdit{
		Changes: map[string][]TextEdit{
			params.TextDocument.URI: {{
				Range:   Range{Start: Position{0, 0}, End: endPosition(oldText)},
				NewText: newText,
			}},
		},
	}
	updateFile(params.TextDocument.URI, newText)
	return edit
}

// elementAt returns the deepest element-like node whose span contains
// offset.
func elementAt(doc *template.Document, offset int) template.ElementLike {
	var deepest template.ElementLike
	var walk func(nodes []template.Node)
	walk = func(nodes []template.Node) {
		for _, n := range nodes {
			span := n.Span()
			if offset < span.Start || offset >= span.End {
				continue
			}
			if el, ok := n.(template.ElementLike); ok {
				deepest = el
			}
			walk(n.TemplateChildren())
		}
	}
	walk(doc.Roots())
	return deepest
}

// offsetAt converts an LSP line/character position into a byte offset.
func offsetAt(text string, pos Position) (int, bool) {
	offset := 0
	line := 0
	for line < pos.Line {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return 0, false
		}
		offset += i + 1
		line++
	}
	if offset+pos.Character > len(text) {
		return 0, false
	}
	return offset + pos.Character, true
}

func endPosition(text string) Position {
	lines := strings.Split(text, "\n")
	return Position{Line: len(lines) - 1, Character: len(lines[len(lines)-1])}
}

func respond(id any, result any) {
	msg := JsonRpcMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  result,
	}
	send(msg)
}

func send(msg any) {
	body, _ := json.Marshal(msg)
	fmt.Printf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

package template

import (
	"regexp"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/parser"
)

// TextNode is a run of literal text.
type TextNode struct {
	base
}

func NewTextNode(doc *Document, tokens []*parser.Token) *TextNode {
	n := &TextNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *TextNode) Kind() string { return "text" }

func (n *TextNode) Value() string {
	return n.MustFirstTokenOfType(parser.TokenText).Text()
}

// ChangeText replaces the text, shifting every later token.
func (n *TextNode) ChangeText(text string) {
	n.replaceTextByTokens([]TokenEdit{{n.MustFirstTokenOfType(parser.TokenText), text}})
}

// TrimText trims surrounding whitespace; a zero-delta edit when the text is
// already trimmed.
func (n *TextNode) TrimText() {
	n.ChangeText(strings.TrimSpace(n.Value()))
}

// InterpolationNode is an embedded expression, "{{expr}}". Its value is
// derived live from the single inner text token, never cached.
type InterpolationNode struct {
	base
}

func NewInterpolationNode(doc *Document, tokens []*parser.Token) *InterpolationNode {
	n := &InterpolationNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *InterpolationNode) Kind() string { return "interpolation" }

func (n *InterpolationNode) Value() string {
	tok, ok := n.FirstTokenOfType(parser.TokenInterpolationText)
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *InterpolationNode) ChangeText(text string) {
	n.replaceTextByTokens([]TokenEdit{{n.MustFirstTokenOfType(parser.TokenInterpolationText), text}})
}

// TrimText trims the expression text. An empty interpolation has no inner
// text token, so there is nothing to rewrite.
func (n *InterpolationNode) TrimText() {
	tok, ok := n.FirstTokenOfType(parser.TokenInterpolationText)
	if !ok {
		return
	}
	n.replaceTextByTokens([]TokenEdit{{tok, strings.TrimSpace(tok.Text())}})
}

// CommentNode is "<!-- ... -->". Value reports ok=false for a comment with
// no content.
type CommentNode struct {
	base
}

func NewCommentNode(doc *Document, tokens []*parser.Token) *CommentNode {
	n := &CommentNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *CommentNode) Kind() string { return "comment" }

func (n *CommentNode) Value() (string, bool) {
	tok, ok := n.FirstTokenOfType(parser.TokenCommentText)
	if !ok {
		return "", false
	}
	return tok.Text(), true
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// PropertyTargetNode is the bound-property side of a binding's name.
type PropertyTargetNode struct {
	base
	name string
}

func NewPropertyTargetNode(doc *Document, tokens []*parser.Token, name string) *PropertyTargetNode {
	n := &PropertyTargetNode{name: name}
	n.init(doc, tokens, n)
	return n
}

func (n *PropertyTargetNode) Kind() string { return "property-target" }
func (n *PropertyTargetNode) Name() string { return n.name }

// EventTargetNode is the bound-event side of a binding's name.
type EventTargetNode struct {
	base
	name string
}

func NewEventTargetNode(doc *Document, tokens []*parser.Token, name string) *EventTargetNode {
	n := &EventTargetNode{name: name}
	n.init(doc, tokens, n)
	return n
}

func (n *EventTargetNode) Kind() string { return "event-target" }
func (n *EventTargetNode) Name() string { return n.name }

// ExpressionNode carries a binding's raw expression text.
type ExpressionNode struct {
	base
}

func NewExpressionNode(doc *Document, tokens []*parser.Token) *ExpressionNode {
	n := &ExpressionNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *ExpressionNode) Kind() string { return "expression" }

// Identifier returns the expression text when it is a single bare
// identifier.
func (n *ExpressionNode) Identifier() (string, bool) {
	text := strings.TrimSpace(n.Text())
	if identifierPattern.MatchString(text) {
		return text, true
	}
	return "", false
}

// StatementNode carries an event handler's raw statement text.
type StatementNode struct {
	base
}

func NewStatementNode(doc *Document, tokens []*parser.Token) *StatementNode {
	n := &StatementNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *StatementNode) Kind() string { return "statement" }

func (n *StatementNode) Identifier() (string, bool) {
	text := strings.TrimSpace(n.Text())
	if identifierPattern.MatchString(text) {
		return text, true
	}
	return "", false
}

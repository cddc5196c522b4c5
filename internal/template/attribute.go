package template

import (
	"strings"

	"github.com/frederikprijck/ng-morph/internal/parser"
)

// AttributeNode is the contract shared by the five attribute kinds. All of
// them are leaves; each exposes its bare name and a name-only rename that
// rewrites the shared name token, keeping its binding decoration.
type AttributeNode interface {
	Node
	Name() string
	Rename(name string)
}

type attrBase struct {
	base
}

func (a *attrBase) nameToken() *parser.Token {
	return a.MustFirstTokenOfType(parser.TokenAttrName)
}

func (a *attrBase) valueToken() (*parser.Token, bool) {
	return a.FirstTokenOfType(parser.TokenAttrValue)
}

func (a *attrBase) rename(decorate func(string) string, name string) {
	a.replaceTextByTokens([]TokenEdit{{a.nameToken(), decorate(name)}})
}

// BareName strips the binding decoration from a raw attribute name:
// "[(x)]", "[x]", "(x)", "#x", and the bind-/on-/ref- prefix forms all
// yield "x".
func BareName(raw string) string {
	switch {
	case strings.HasPrefix(raw, "[(") && strings.HasSuffix(raw, ")]"):
		return raw[2 : len(raw)-2]
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		return raw[1 : len(raw)-1]
	case strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")"):
		return raw[1 : len(raw)-1]
	case strings.HasPrefix(raw, "#"):
		return raw[1:]
	case strings.HasPrefix(raw, "bind-"):
		return raw[len("bind-"):]
	case strings.HasPrefix(raw, "on-"):
		return raw[len("on-"):]
	case strings.HasPrefix(raw, "ref-"):
		return raw[len("ref-"):]
	default:
		return raw
	}
}

// TextAttributeNode is a plain name="value" attribute.
type TextAttributeNode struct {
	attrBase
}

func NewTextAttributeNode(doc *Document, tokens []*parser.Token) *TextAttributeNode {
	n := &TextAttributeNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *TextAttributeNode) Kind() string { return "text-attribute" }

func (n *TextAttributeNode) Name() string {
	return n.nameToken().Text()
}

func (n *TextAttributeNode) Value() string {
	tok, ok := n.valueToken()
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *TextAttributeNode) Rename(name string) {
	n.rename(func(s string) string { return s }, name)
}

// BoundPropertyNode is "[prop]" / "bind-prop".
type BoundPropertyNode struct {
	attrBase
	target     *PropertyTargetNode
	expression *ExpressionNode
}

func NewBoundPropertyNode(doc *Document, tokens []*parser.Token, target *PropertyTargetNode, expression *ExpressionNode) *BoundPropertyNode {
	n := &BoundPropertyNode{target: target, expression: expression}
	n.init(doc, tokens, n)
	return n
}

func (n *BoundPropertyNode) Kind() string { return "bound-property" }

func (n *BoundPropertyNode) Name() string {
	return BareName(n.nameToken().Text())
}

func (n *BoundPropertyNode) Target() *PropertyTargetNode { return n.target }

// Expression is nil for a value-less binding.
func (n *BoundPropertyNode) Expression() *ExpressionNode { return n.expression }

func (n *BoundPropertyNode) Value() string {
	tok, ok := n.valueToken()
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *BoundPropertyNode) Rename(name string) {
	n.rename(func(s string) string {
		if strings.HasPrefix(n.nameToken().Text(), "[") {
			return "[" + s + "]"
		}
		return "bind-" + s
	}, name)
}

// BoundEventNode is "(event)" / "on-event".
type BoundEventNode struct {
	attrBase
	target    *EventTargetNode
	statement *StatementNode
}

func NewBoundEventNode(doc *Document, tokens []*parser.Token, target *EventTargetNode, statement *StatementNode) *BoundEventNode {
	n := &BoundEventNode{target: target, statement: statement}
	n.init(doc, tokens, n)
	return n
}

func (n *BoundEventNode) Kind() string { return "bound-event" }

func (n *BoundEventNode) Name() string {
	return BareName(n.nameToken().Text())
}

func (n *BoundEventNode) Target() *EventTargetNode { return n.target }

// Statement is nil for a handler-less binding.
func (n *BoundEventNode) Statement() *StatementNode { return n.statement }

func (n *BoundEventNode) Handler() string {
	tok, ok := n.valueToken()
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *BoundEventNode) Rename(name string) {
	n.rename(func(s string) string {
		if strings.HasPrefix(n.nameToken().Text(), "(") {
			return "(" + s + ")"
		}
		return "on-" + s
	}, name)
}

// TwoWayBindingNode is "[(prop)]".
type TwoWayBindingNode struct {
	attrBase
	target     *PropertyTargetNode
	expression *ExpressionNode
}

func NewTwoWayBindingNode(doc *Document, tokens []*parser.Token, target *PropertyTargetNode, expression *ExpressionNode) *TwoWayBindingNode {
	n := &TwoWayBindingNode{target: target, expression: expression}
	n.init(doc, tokens, n)
	return n
}

func (n *TwoWayBindingNode) Kind() string { return "two-way-binding" }

func (n *TwoWayBindingNode) Name() string {
	return BareName(n.nameToken().Text())
}

func (n *TwoWayBindingNode) Target() *PropertyTargetNode { return n.target }
func (n *TwoWayBindingNode) Expression() *ExpressionNode { return n.expression }

func (n *TwoWayBindingNode) Value() string {
	tok, ok := n.valueToken()
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *TwoWayBindingNode) Rename(name string) {
	n.rename(func(s string) string { return "[(" + s + ")]" }, name)
}

// ReferenceNode is "#ref" / "ref-ref", a template reference variable.
type ReferenceNode struct {
	attrBase
}

func NewReferenceNode(doc *Document, tokens []*parser.Token) *ReferenceNode {
	n := &ReferenceNode{}
	n.init(doc, tokens, n)
	return n
}

func (n *ReferenceNode) Kind() string { return "reference" }

func (n *ReferenceNode) Name() string {
	return BareName(n.nameToken().Text())
}

// Value is the exported directive name, empty for a bare reference.
func (n *ReferenceNode) Value() string {
	tok, ok := n.valueToken()
	if !ok {
		return ""
	}
	return tok.Text()
}

func (n *ReferenceNode) Rename(name string) {
	n.rename(func(s string) string {
		if strings.HasPrefix(n.nameToken().Text(), "#") {
			return "#" + s
		}
		return "ref-" + s
	}, name)
}

package template

import (
	"fmt"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/parser"
)

// ElementLike is implemented by the three tag-bearing structural kinds:
// ordinary elements, template containers, and grouping containers.
type ElementLike interface {
	Node
	TagName() string
	Attributes() []AttributeNode
	TextAttributes() []*TextAttributeNode
	BoundProperties() []*BoundPropertyNode
	BoundEvents() []*BoundEventNode
	TwoWayBindings() []*TwoWayBindingNode
	References() []*ReferenceNode
	ChangeTagName(name string)
}

// elementLike holds the ordered children and the five attribute buckets.
// The buckets are pairwise disjoint and their union is the full attribute
// list; partitioning happens once, at construction.
type elementLike struct {
	base
	children   []Node
	attributes []AttributeNode

	textAttributes  []*TextAttributeNode
	boundProperties []*BoundPropertyNode
	boundEvents     []*BoundEventNode
	twoWayBindings  []*TwoWayBindingNode
	references      []*ReferenceNode
}

func (e *elementLike) initElement(doc *Document, tokens []*parser.Token, self Node, attributes []AttributeNode, children []Node) {
	e.init(doc, tokens, self)
	e.children = children
	e.attributes = attributes
	for _, a := range attributes {
		switch attr := a.(type) {
		case *TextAttributeNode:
			e.textAttributes = append(e.textAttributes, attr)
		case *BoundPropertyNode:
			e.boundProperties = append(e.boundProperties, attr)
		case *BoundEventNode:
			e.boundEvents = append(e.boundEvents, attr)
		case *TwoWayBindingNode:
			e.twoWayBindings = append(e.twoWayBindings, attr)
		case *ReferenceNode:
			e.references = append(e.references, attr)
		default:
			panic(fmt.Sprintf("template: attribute %q at %s matches no binding classification", a.Name(), a.Span()))
		}
	}
}

func (e *elementLike) TemplateChildren() []Node {
	return e.children
}

func (e *elementLike) Attributes() []AttributeNode          { return e.attributes }
func (e *elementLike) TextAttributes() []*TextAttributeNode { return e.textAttributes }
func (e *elementLike) BoundProperties() []*BoundPropertyNode {
	return e.boundProperties
}
func (e *elementLike) BoundEvents() []*BoundEventNode       { return e.boundEvents }
func (e *elementLike) TwoWayBindings() []*TwoWayBindingNode { return e.twoWayBindings }
func (e *elementLike) References() []*ReferenceNode         { return e.references }

// Attribute looks an attribute up by its bare name across all buckets.
func (e *elementLike) Attribute(name string) (AttributeNode, bool) {
	for _, a := range e.attributes {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Reference looks a template reference up by name.
func (e *elementLike) Reference(name string) (*ReferenceNode, bool) {
	for _, r := range e.references {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// MustReference panics with the known reference names when name is absent.
func (e *elementLike) MustReference(name string) *ReferenceNode {
	if r, ok := e.Reference(name); ok {
		return r
	}
	known := make([]string, len(e.references))
	for i, r := range e.references {
		known[i] = r.Name()
	}
	panic(fmt.Sprintf("template: no reference %q on <%s> at %s (known references: [%s])",
		name, e.TagName(), e.Span(), strings.Join(known, ", ")))
}

func (e *elementLike) openTagToken() *parser.Token {
	return e.MustFirstTokenOfType(parser.TokenTagOpenStart)
}

func (e *elementLike) TagName() string {
	return e.openTagToken().Text()[1:]
}

// TagNameSpan is the open-tag token's span with the leading "<" trimmed.
func (e *elementLike) TagNameSpan() *parser.Span {
	span := e.openTagToken().Span().Clone()
	span.ShiftStart(1)
	return span
}

// CloseTagNameSpan is the close-tag token's span with "</" and ">" trimmed,
// absent for void and self-closing elements.
func (e *elementLike) CloseTagNameSpan() (*parser.Span, bool) {
	tok, ok := e.FirstTokenOfType(parser.TokenTagClose)
	if !ok {
		return nil, false
	}
	span := tok.Span().Clone()
	span.ShiftStart(2)
	span.ShiftEnd(-1)
	return span, true
}

// ChangeTagName rewrites the open-tag token to "<name" and, when present,
// the close-tag token to "</name>", in that order, each edit cascading its
// own offset shift.
func (e *elementLike) ChangeTagName(name string) {
	edits := []TokenEdit{{e.openTagToken(), "<" + name}}
	if closeTok, ok := e.FirstTokenOfType(parser.TokenTagClose); ok {
		edits = append(edits, TokenEdit{closeTok, "</" + name + ">"})
	}
	e.replaceTextByTokens(edits)
}

// ElementNode is an ordinary element.
type ElementNode struct {
	elementLike
}

func NewElementNode(doc *Document, tokens []*parser.Token, attributes []AttributeNode, children []Node) *ElementNode {
	n := &ElementNode{}
	n.initElement(doc, tokens, n, attributes, children)
	return n
}

func (n *ElementNode) Kind() string { return "element" }

// TemplateNode is the template container, <ng-template>.
type TemplateNode struct {
	elementLike
}

func NewTemplateNode(doc *Document, tokens []*parser.Token, attributes []AttributeNode, children []Node) *TemplateNode {
	n := &TemplateNode{}
	n.initElement(doc, tokens, n, attributes, children)
	return n
}

func (n *TemplateNode) Kind() string { return "template" }

// ContainerNode is the grouping container, <ng-container>.
type ContainerNode struct {
	elementLike
}

func NewContainerNode(doc *Document, tokens []*parser.Token, attributes []AttributeNode, children []Node) *ContainerNode {
	n := &ContainerNode{}
	n.initElement(doc, tokens, n, attributes, children)
	return n
}

func (n *ContainerNode) Kind() string { return "container" }

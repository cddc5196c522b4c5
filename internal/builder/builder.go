// Package builder lowers the raw parse tree into the mutable node tree. The
// raw tree is consumed here and not retained; the resulting Document and its
// nodes share the token sequence the parse produced.
package builder

import (
	"fmt"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/parser"
	"github.com/frederikprijck/ng-morph/internal/template"
)

// Build constructs the mutable tree for one parse result.
func Build(res *parser.ParseResult) *template.Document {
	doc := template.NewDocument(res.Source, res.Tokens)
	doc.SetRoots(buildNodes(doc, res.Nodes))
	return doc
}

// ParseAndBuild is the common parse-then-build path.
func ParseAndBuild(file, content string) (*template.Document, error) {
	res, err := parser.Parse(file, content)
	if err != nil {
		return nil, err
	}
	return Build(res), nil
}

func buildNodes(doc *template.Document, raw []parser.Node) []template.Node {
	var nodes []template.Node
	for _, rn := range raw {
		if n := buildNode(doc, rn); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func buildNode(doc *template.Document, raw parser.Node) template.Node {
	switch rn := raw.(type) {
	case *parser.Text:
		if rn.IsInterpolation() {
			return template.NewInterpolationNode(doc, rn.Tokens())
		}
		return template.NewTextNode(doc, rn.Tokens())
	case *parser.Comment:
		return template.NewCommentNode(doc, rn.Tokens())
	case *parser.Element:
		return buildElement(doc, rn)
	case *parser.Expansion:
		// Expansion forms stay raw-tree only; position queries against the
		// raw tree still see them.
		return nil
	default:
		panic(fmt.Sprintf("builder: unexpected raw node %T at content level", raw))
	}
}

func buildElement(doc *template.Document, el *parser.Element) template.Node {
	attributes := make([]template.AttributeNode, len(el.Attrs))
	for i, a := range el.Attrs {
		attributes[i] = buildAttribute(doc, a)
	}
	children := buildNodes(doc, el.Children)

	var node template.Node
	switch strings.ToLower(el.Name) {
	case "ng-template":
		node = template.NewTemplateNode(doc, el.Tokens(), attributes, children)
	case "ng-container":
		node = template.NewContainerNode(doc, el.Tokens(), attributes, children)
	default:
		node = template.NewElementNode(doc, el.Tokens(), attributes, children)
	}

	for _, c := range children {
		c.SetParent(node)
	}
	for _, a := range attributes {
		a.SetParent(node)
	}
	return node
}

func buildAttribute(doc *template.Document, attr *parser.Attribute) template.AttributeNode {
	nameTok := tokenOfType(attr, parser.TokenAttrName)
	valueTok, hasValue := optionalTokenOfType(attr, parser.TokenAttrValue)
	bare := template.BareName(attr.Name)

	expression := func() *template.ExpressionNode {
		if !hasValue {
			return nil
		}
		return template.NewExpressionNode(doc, []*parser.Token{valueTok})
	}
	statement := func() *template.StatementNode {
		if !hasValue {
			return nil
		}
		return template.NewStatementNode(doc, []*parser.Token{valueTok})
	}

	name := attr.Name
	switch {
	case strings.HasPrefix(name, "[(") && strings.HasSuffix(name, ")]"):
		target := template.NewPropertyTargetNode(doc, []*parser.Token{nameTok}, bare)
		expr := expression()
		n := template.NewTwoWayBindingNode(doc, attr.Tokens(), target, expr)
		linkValueLeaves(n, target, expr, nil)
		return n
	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"),
		strings.HasPrefix(name, "bind-"):
		target := template.NewPropertyTargetNode(doc, []*parser.Token{nameTok}, bare)
		expr := expression()
		n := template.NewBoundPropertyNode(doc, attr.Tokens(), target, expr)
		linkValueLeaves(n, target, expr, nil)
		return n
	case strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"),
		strings.HasPrefix(name, "on-"):
		target := template.NewEventTargetNode(doc, []*parser.Token{nameTok}, bare)
		stmt := statement()
		n := template.NewBoundEventNode(doc, attr.Tokens(), target, stmt)
		linkValueLeaves(n, target, nil, stmt)
		return n
	case strings.HasPrefix(name, "#"), strings.HasPrefix(name, "ref-"):
		return template.NewReferenceNode(doc, attr.Tokens())
	default:
		return template.NewTextAttributeNode(doc, attr.Tokens())
	}
}

// linkValueLeaves parents the leaves derived from an attribute's name and
// value tokens to the attribute node itself.
func linkValueLeaves(attr template.Node, target template.Node, expr *template.ExpressionNode, stmt *template.StatementNode) {
	if target != nil {
		target.SetParent(attr)
	}
	if expr != nil {
		expr.SetParent(attr)
	}
	if stmt != nil {
		stmt.SetParent(attr)
	}
}

func tokenOfType(n parser.Node, tt parser.TokenType) *parser.Token {
	tok, ok := optionalTokenOfType(n, tt)
	if !ok {
		panic(fmt.Sprintf("builder: raw node at %s has no %s token", n.Span(), tt))
	}
	return tok
}

func optionalTokenOfType(n parser.Node, tt parser.TokenType) (*parser.Token, bool) {
	for _, t := range n.Tokens() {
		if t.Type == tt {
			return t, true
		}
	}
	return nil, false
}

package template

import (
	"fmt"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/parser"
)

// Node is the base contract every mutable node implements.
type Node interface {
	// Kind names the node kind for diagnostics.
	Kind() string
	Document() *Document
	// TemplateChildren returns the node's structural children; empty for
	// every leaf kind.
	TemplateChildren() []Node
	Parent() Node
	// SetParent assigns the parent link. Write-once: a second call panics.
	SetParent(p Node)
	NextSibling() Node
	Descendants(pred func(Node) bool) []Node
	Descendant(pred func(Node) bool) Node
	Tokens() []*parser.Token
	// Span is the node's current [start, end) extent, derived from its
	// first and last tokens so mutations keep it accurate.
	Span() *parser.Span
	Text() string
}

// TokenEdit pairs a token with its replacement text for the mutation
// protocol.
type TokenEdit struct {
	Token   *parser.Token
	NewText string
}

// base carries what every node kind shares: the owning document, the node's
// token subset, and the parent back-reference. self is the concrete node the
// base is embedded in, needed for identity lookups and child traversal.
type base struct {
	doc       *Document
	tokens    []*parser.Token
	self      Node
	parent    Node
	parentSet bool
}

func (b *base) init(doc *Document, tokens []*parser.Token, self Node) {
	b.doc = doc
	b.tokens = tokens
	b.self = self
}

func (b *base) Document() *Document {
	return b.doc
}

func (b *base) TemplateChildren() []Node {
	return nil
}

func (b *base) Parent() Node {
	return b.parent
}

func (b *base) SetParent(p Node) {
	if b.parentSet {
		panic(fmt.Sprintf("template: parent of %s node at %s assigned twice", b.self.Kind(), b.Span()))
	}
	b.parent = p
	b.parentSet = true
}

// NextSibling finds this node by identity among its parent's children (or
// the document root list for a root node) and returns the following one, or
// nil past the end.
func (b *base) NextSibling() Node {
	siblings := b.doc.Roots()
	if b.parent != nil {
		siblings = b.parent.TemplateChildren()
	}
	for i, s := range siblings {
		if s == b.self {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	panic(fmt.Sprintf("template: %s node at %s not found among its siblings", b.self.Kind(), b.Span()))
}

// Descendants walks breadth-first over TemplateChildren starting from this
// node's direct children (self excluded) and collects every node matching
// pred. A nil pred matches everything.
func (b *base) Descendants(pred func(Node) bool) []Node {
	var matches []Node
	queue := append([]Node(nil), b.self.TemplateChildren()...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if pred == nil || pred(n) {
			matches = append(matches, n)
		}
		queue = append(queue, n.TemplateChildren()...)
	}
	return matches
}

// Descendant returns the first matching descendant in breadth-first order,
// or nil.
func (b *base) Descendant(pred func(Node) bool) Node {
	queue := append([]Node(nil), b.self.TemplateChildren()...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if pred == nil || pred(n) {
			return n
		}
		queue = append(queue, n.TemplateChildren()...)
	}
	return nil
}

// MustDescendant converts a descendant miss into a construction-defect
// panic. what describes the query for the message.
func MustDescendant(n Node, pred func(Node) bool, what string) Node {
	if d := n.Descendant(pred); d != nil {
		return d
	}
	var kinds []string
	for _, d := range n.Descendants(nil) {
		kinds = append(kinds, d.Kind())
	}
	panic(fmt.Sprintf("template: no descendant matching %s under %s node at %s (descendant kinds: %s)",
		what, n.Kind(), n.Span(), strings.Join(kinds, ", ")))
}

func (b *base) Tokens() []*parser.Token {
	return b.tokens
}

func (b *base) TokensOfType(tt parser.TokenType) []*parser.Token {
	var matches []*parser.Token
	for _, t := range b.tokens {
		if t.Type == tt {
			matches = append(matches, t)
		}
	}
	return matches
}

func (b *base) FirstTokenOfType(tt parser.TokenType) (*parser.Token, bool) {
	for _, t := range b.tokens {
		if t.Type == tt {
			return t, true
		}
	}
	return nil, false
}

func (b *base) MustFirstTokenOfType(tt parser.TokenType) *parser.Token {
	tok, ok := b.FirstTokenOfType(tt)
	if !ok {
		var names []string
		for _, t := range b.tokens {
			names = append(names, t.Name())
		}
		panic(fmt.Sprintf("template: %s node at %s has no %s token (has: %s)",
			b.self.Kind(), b.Span(), tt, strings.Join(names, ", ")))
	}
	return tok
}

func (b *base) firstToken() *parser.Token {
	return b.tokens[0]
}

func (b *base) lastToken() *parser.Token {
	return b.tokens[len(b.tokens)-1]
}

func (b *base) Span() *parser.Span {
	return parser.NewSpan(b.doc.Source(), b.firstToken().Span().Start, b.lastToken().Span().End)
}

func (b *base) Text() string {
	return b.Span().Text()
}

// ForEachTokenAfter visits every document token strictly after this node's
// last token.
func (b *base) ForEachTokenAfter(fn func(*parser.Token)) {
	b.doc.ForEachTokenAfter(b.lastToken(), false, fn)
}

// ForEachTokenInSpan visits this node's own token range, both ends
// inclusive.
func (b *base) ForEachTokenInSpan(fn func(*parser.Token)) {
	b.doc.ForEachTokenBetween(b.firstToken(), b.lastToken(), true, true, fn)
}

// ForEachToken visits the node's own token range, then everything after it.
func (b *base) ForEachToken(fn func(*parser.Token)) {
	b.ForEachTokenInSpan(fn)
	b.ForEachTokenAfter(fn)
}

// replaceTextByTokens is the mutation protocol. Each edit is fully applied
// before the next begins: replace the token's span text, then have the
// document shift every strictly-later token by the length delta. Full
// per-edit application is what makes multi-token edits on one node (an open
// and a close tag, say) shift correctly.
func (b *base) replaceTextByTokens(edits []TokenEdit) {
	for _, e := range edits {
		delta := len(e.NewText) - e.Token.Span().Length()
		e.Token.Span().ReplaceText(e.NewText)
		b.doc.ShiftTokensAfter(e.Token, delta)
	}
}

// Package template is the mutable node tree built on top of the raw parse
// tree. Nodes keep non-owning references into the token sequence owned by
// their Document; localized text edits go through the mutation protocol,
// which keeps every later token's offset correct without re-parsing.
package template

import (
	"fmt"

	"github.com/frederikprijck/ng-morph/internal/parser"
)

// Document owns the canonical ordered token sequence and the top-level node
// list for one template file. It is the sole authority on token order. A
// re-parse replaces the Document wholesale; nothing is torn down piecemeal.
type Document struct {
	source *parser.Source
	tokens []*parser.Token
	roots  []Node
}

func NewDocument(source *parser.Source, tokens []*parser.Token) *Document {
	return &Document{source: source, tokens: tokens}
}

func (d *Document) File() string {
	return d.source.File
}

func (d *Document) Source() *parser.Source {
	return d.source
}

// Text returns the current rendering of the whole file, reflecting every
// mutation applied so far.
func (d *Document) Text() string {
	return d.source.Text()
}

func (d *Document) Tokens() []*parser.Token {
	return d.tokens
}

func (d *Document) Roots() []Node {
	return d.roots
}

// SetRoots installs the top-level node list. Called once by the builder.
func (d *Document) SetRoots(roots []Node) {
	d.roots = roots
}

// TokenIndex locates a token by identity in document order.
func (d *Document) TokenIndex(tok *parser.Token) (int, bool) {
	for i, t := range d.tokens {
		if t == tok {
			return i, true
		}
	}
	return 0, false
}

func (d *Document) mustTokenIndex(tok *parser.Token) int {
	i, ok := d.TokenIndex(tok)
	if !ok {
		panic(fmt.Sprintf("template: token %s is not part of document %s", tok, d.File()))
	}
	return i
}

// ForEachTokenAfter calls fn for every token after tok in document order,
// including tok itself when includeSelf is set.
func (d *Document) ForEachTokenAfter(tok *parser.Token, includeSelf bool, fn func(*parser.Token)) {
	i := d.mustTokenIndex(tok)
	if !includeSelf {
		i++
	}
	for ; i < len(d.tokens); i++ {
		fn(d.tokens[i])
	}
}

// ForEachTokenBetween calls fn for every token between from and to in
// document order, with independent inclusivity on each end.
func (d *Document) ForEachTokenBetween(from, to *parser.Token, includeFrom, includeTo bool, fn func(*parser.Token)) {
	i := d.mustTokenIndex(from)
	j := d.mustTokenIndex(to)
	if !includeFrom {
		i++
	}
	if includeTo {
		j++
	}
	for ; i < j; i++ {
		fn(d.tokens[i])
	}
}

// ShiftTokensAfter shifts every token strictly after tok by delta. The
// mutated token itself is excluded; tokens before it never move.
func (d *Document) ShiftTokensAfter(tok *parser.Token, delta int) {
	if delta == 0 {
		return
	}
	d.ForEachTokenAfter(tok, false, func(t *parser.Token) {
		t.Span().Shift(delta)
	})
}

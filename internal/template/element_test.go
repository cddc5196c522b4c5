package template_test

import (
	"testing"

	"github.com/frederikprijck/ng-morph/internal/template"
)

func TestChangeTagName(t *testing.T) {
	doc := build(t, `<div>x</div>`)
	div := firstElement(t, doc)

	div.ChangeTagName("span")
	if doc.Text() != `<span>x</span>` {
		t.Errorf("unexpected document text %q", doc.Text())
	}
	if div.TagName() != "span" {
		t.Errorf("tag name should re-derive, got %q", div.TagName())
	}
}

func TestChangeTagNameShrinks(t *testing.T) {
	doc := build(t, `<section>x</section><p>y</p>`)
	section := firstElement(t, doc)

	section.ChangeTagName("b")
	if doc.Text() != `<b>x</b><p>y</p>` {
		t.Errorf("unexpected document text %q", doc.Text())
	}
	p := doc.Roots()[1].(template.ElementLike)
	if p.Text() != `<p>y</p>` {
		t.Errorf("later element text %q after rename", p.Text())
	}
}

func TestChangeTagNameSelfClosing(t *testing.T) {
	doc := build(t, `<my-icon/>`)
	el := firstElement(t, doc)

	el.ChangeTagName("app-icon")
	if doc.Text() != `<app-icon/>` {
		t.Errorf("unexpected document text %q", doc.Text())
	}
}

func TestTagNameSpans(t *testing.T) {
	doc := build(t, `<div class="a">x</div>`)
	div := firstElement(t, doc).(*template.ElementNode)

	if div.TagNameSpan().Text() != "div" {
		t.Errorf("unexpected tag name span text %q", div.TagNameSpan().Text())
	}
	closeSpan, ok := div.CloseTagNameSpan()
	if !ok || closeSpan.Text() != "div" {
		t.Errorf("unexpected close tag name span %v", closeSpan)
	}
}

func TestCloseTagNameSpanAbsent(t *testing.T) {
	doc := build(t, `<br>`)
	br := firstElement(t, doc).(*template.ElementNode)
	if _, ok := br.CloseTagNameSpan(); ok {
		t.Error("void element should have no close tag name span")
	}
}

func TestAttributeBuckets(t *testing.T) {
	doc := build(t, `<input class="a" [value]="x" (input)="go()" [(model)]="m" #field>`)
	el := firstElement(t, doc)

	if len(el.Attributes()) != 5 {
		t.Fatalf("expected 5 attributes, got %d", len(el.Attributes()))
	}
	if len(el.TextAttributes()) != 1 || el.TextAttributes()[0].Name() != "class" {
		t.Errorf("unexpected text attributes %v", el.TextAttributes())
	}
	if len(el.BoundProperties()) != 1 || el.BoundProperties()[0].Name() != "value" {
		t.Errorf("unexpected bound properties %v", el.BoundProperties())
	}
	if len(el.BoundEvents()) != 1 || el.BoundEvents()[0].Name() != "input" {
		t.Errorf("unexpected bound events %v", el.BoundEvents())
	}
	if len(el.TwoWayBindings()) != 1 || el.TwoWayBindings()[0].Name() != "model" {
		t.Errorf("unexpected two-way bindings %v", el.TwoWayBindings())
	}
	if len(el.References()) != 1 || el.References()[0].Name() != "field" {
		t.Errorf("unexpected references %v", el.References())
	}
}

func TestAttributeLookup(t *testing.T) {
	doc := build(t, `<div class="a" [hidden]="h"></div>`)
	div := firstElement(t, doc).(*template.ElementNode)

	attr, ok := div.Attribute("hidden")
	if !ok || attr.Kind() != "bound-property" {
		t.Errorf("expected bound-property for hidden, got %v", attr)
	}
	if _, ok := div.Attribute("missing"); ok {
		t.Error("lookup of absent attribute should miss")
	}
}

func TestMustReferencePanics(t *testing.T) {
	doc := build(t, `<div #a #b></div>`)
	div := firstElement(t, doc).(*template.ElementNode)

	if div.MustReference("a").Name() != "a" {
		t.Error("expected reference a")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing reference")
		}
	}()
	div.MustReference("c")
}

func TestAttributeRename(t *testing.T) {
	doc := build(t, `<div [value]="x" (click)="go()" [(model)]="m" #ref title="t"></div>`)
	div := firstElement(t, doc)

	div.BoundProperties()[0].Rename("hidden")
	div.BoundEvents()[0].Rename("input")
	div.TwoWayBindings()[0].Rename("checked")
	div.References()[0].Rename("other")
	div.TextAttributes()[0].Rename("alt")

	want := `<div [hidden]="x" (input)="go()" [(checked)]="m" #other alt="t"></div>`
	if doc.Text() != want {
		t.Errorf("unexpected document text:\n got %q\nwant %q", doc.Text(), want)
	}
}

func TestAttributeRenameKeepsPrefixForm(t *testing.T) {
	doc := build(t, `<div bind-value="x" on-click="go()" ref-a></div>`)
	div := firstElement(t, doc)

	div.BoundProperties()[0].Rename("hidden")
	div.BoundEvents()[0].Rename("input")
	div.References()[0].Rename("b")

	want := `<div bind-hidden="x" on-input="go()" ref-b></div>`
	if doc.Text() != want {
		t.Errorf("unexpected document text:\n got %q\nwant %q", doc.Text(), want)
	}
}

func TestBoundPropertyValueLeaves(t *testing.T) {
	doc := build(t, `<div [value]="count"></div>`)
	div := firstElement(t, doc)
	prop := div.BoundProperties()[0]

	if prop.Target() == nil || prop.Target().Name() != "value" {
		t.Errorf("unexpected target %v", prop.Target())
	}
	expr := prop.Expression()
	if expr == nil {
		t.Fatal("expected an expression leaf")
	}
	if id, ok := expr.Identifier(); !ok || id != "count" {
		t.Errorf("expected identifier count, got %q", id)
	}
	// Value leaves hang off the attribute, outside any child list.
	if expr.Parent() != prop {
		t.Error("expression should be parented to its attribute")
	}
}

func TestBoundEventHandler(t *testing.T) {
	doc := build(t, `<button (click)="save($event)"></button>`)
	btn := firstElement(t, doc)
	ev := btn.BoundEvents()[0]

	if ev.Handler() != "save($event)" {
		t.Errorf("unexpected handler %q", ev.Handler())
	}
	if _, ok := ev.Statement().Identifier(); ok {
		t.Error("a call is not a bare identifier")
	}
}

func TestReferenceValue(t *testing.T) {
	doc := build(t, `<form #f="ngForm" #bare></form>`)
	form := firstElement(t, doc)

	refs := form.References()
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].Value() != "ngForm" {
		t.Errorf("expected export name ngForm, got %q", refs[0].Value())
	}
	if refs[1].Value() != "" {
		t.Errorf("bare reference should have empty value, got %q", refs[1].Value())
	}
}

func TestBareName(t *testing.T) {
	cases := map[string]string{
		"[(x)]":  "x",
		"[x]":    "x",
		"(x)":    "x",
		"#x":     "x",
		"bind-x": "x",
		"on-x":   "x",
		"ref-x":  "x",
		"x":      "x",
	}
	for raw, want := range cases {
		if got := template.BareName(raw); got != want {
			t.Errorf("BareName(%q) = %q, want %q", raw, got, want)
		}
	}
}

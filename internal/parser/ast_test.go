package parser

import (
	"testing"
)

// tagCollector gathers element names, descending through the default
// recursive traversal.
type tagCollector struct {
	RecursiveVisitor
	names []string
}

func (c *tagCollector) VisitElement(n *Element, context any) any {
	c.names = append(c.names, n.Name)
	c.RecursiveVisitor.VisitElement(n, context)
	return nil
}

func TestRecursiveVisitorDelegate(t *testing.T) {
	res := parse(t, `<div><span>x</span><p></p></div>`)

	c := &tagCollector{}
	c.Delegate = c
	VisitAll(c, res.Nodes, nil)

	want := []string{"div", "span", "p"}
	if len(c.names) != len(want) {
		t.Fatalf("expected %v, got %v", want, c.names)
	}
	for i := range want {
		if c.names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, c.names)
			break
		}
	}
}

// pruningVisitor skips elements entirely via the pre-visit hook.
type pruningVisitor struct {
	RecursiveVisitor
	texts []string
}

func (v *pruningVisitor) Visit(n Node, context any) any {
	if _, ok := n.(*Element); ok {
		return true
	}
	return nil
}

func (v *pruningVisitor) VisitText(n *Text, context any) any {
	v.texts = append(v.texts, n.Value)
	return nil
}

func TestPreVisitHookPrunes(t *testing.T) {
	res := parse(t, `before<div>inside</div>after`)

	v := &pruningVisitor{}
	v.Delegate = v
	results := VisitAll(v, res.Nodes, nil)

	if len(v.texts) != 2 || v.texts[0] != "before" || v.texts[1] != "after" {
		t.Errorf("pruned traversal should only see top-level text, got %v", v.texts)
	}
	// The hook's truthy result for the element is collected in place of its
	// dispatch result.
	if len(results) != 1 {
		t.Errorf("expected 1 collected result, got %d", len(results))
	}
}

func TestVisitAllCollectsNonNil(t *testing.T) {
	res := parse(t, `a<div></div>b`)

	c := &tagCollector{}
	c.Delegate = c
	results := VisitAll(c, res.Nodes, nil)
	if len(results) != 0 {
		t.Errorf("all-nil visitor results should collect nothing, got %v", results)
	}
}

func TestSpanOf(t *testing.T) {
	res := parse(t, `<div><span>hi</span><br></div>`)
	div := res.Nodes[0].(*Element)
	span := div.Children[0].(*Element)
	text := span.Children[0].(*Text)
	br := div.Children[1].(*Element)

	if start, end := SpanOf(div); start != 0 || end != 24 {
		t.Errorf("div extent: expected [0, 24), got [%d, %d)", start, end)
	}
	// An element's extent stops where its end tag starts.
	if start, end := SpanOf(span); start != 5 || end != 13 {
		t.Errorf("span extent: expected [5, 13), got [%d, %d)", start, end)
	}
	if start, end := SpanOf(text); start != 11 || end != 13 {
		t.Errorf("text extent: expected [11, 13), got [%d, %d)", start, end)
	}
	// A childless element with no end tag degenerates to its start.
	if start, end := SpanOf(br); start != 20 || end != 20 {
		t.Errorf("br extent: expected [20, 20), got [%d, %d)", start, end)
	}
}

func TestSpanOfLastChildFallback(t *testing.T) {
	res := parse(t, `<div><br></div>`)
	div := res.Nodes[0].(*Element)

	wrapped := NewElement(div.Tokens(), div.Span(), div.Name, div.Attrs, div.Children, div.StartTagSpan, nil)
	_, end := SpanOf(wrapped)
	brStart, _ := SpanOf(div.Children[0])
	if end != brStart {
		t.Errorf("extent without end tag should stop at last child extent, got %d", end)
	}
}

func TestFindNode(t *testing.T) {
	res := parse(t, `<div><span>{{x}}</span></div>`)

	path := FindNode(res.Nodes, 13)
	if len(path.Path) != 3 {
		t.Fatalf("expected 3-node path, got %d", len(path.Path))
	}
	if el, ok := path.Path[0].(*Element); !ok || el.Name != "div" {
		t.Errorf("expected outermost div, got %T", path.Path[0])
	}
	if el, ok := path.Path[1].(*Element); !ok || el.Name != "span" {
		t.Errorf("expected span, got %T", path.Path[1])
	}
	text, ok := path.Innermost().(*Text)
	if !ok || !text.IsInterpolation() {
		t.Errorf("expected innermost interpolation, got %T", path.Innermost())
	}
	if path.Position != 13 {
		t.Errorf("expected position 13, got %d", path.Position)
	}
}

func TestFindNodeOutside(t *testing.T) {
	res := parse(t, `<div></div>`)

	// Inside the end tag is past the element's extent.
	path := FindNode(res.Nodes, 7)
	if path.Innermost() != nil {
		t.Errorf("expected empty path, got %v", path.Path)
	}
}

func TestFindNodeAttribute(t *testing.T) {
	res := parse(t, `<div class="box">x</div>`)

	path := FindNode(res.Nodes, 6)
	if len(path.Path) != 2 {
		t.Fatalf("expected element and attribute, got %d nodes", len(path.Path))
	}
	attr, ok := path.Innermost().(*Attribute)
	if !ok || attr.Name != "class" {
		t.Errorf("expected class attribute, got %T", path.Innermost())
	}
}

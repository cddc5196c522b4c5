package parser

// Node is a raw parse-tree node. The raw tree is produced once per parse and
// handed to the builder; it is not retained by the mutable tree.
type Node interface {
	Tokens() []*Token
	Span() *Span
	Visit(v Visitor, context any) any
}

// Visitor dispatches over the closed set of raw node kinds.
type Visitor interface {
	VisitText(n *Text, context any) any
	VisitExpansion(n *Expansion, context any) any
	VisitExpansionCase(n *ExpansionCase, context any) any
	VisitAttribute(n *Attribute, context any) any
	VisitElement(n *Element, context any) any
	VisitComment(n *Comment, context any) any
}

// PreVisitor is the optional generic hook a Visitor may additionally
// implement. A non-nil result from Visit is used as the node's result and
// skips kind-specific dispatch, which is how traversal pruning works.
type PreVisitor interface {
	Visit(n Node, context any) any
}

type nodeBase struct {
	tokens []*Token
	span   *Span
}

func (b *nodeBase) Tokens() []*Token { return b.tokens }
func (b *nodeBase) Span() *Span     { return b.span }

// Text is a run of character data. A run that is an interpolation
// ("{{expr}}") is its own Text node whose tokens are the interpolation
// tokens; the builder tells the two apart by token type.
type Text struct {
	nodeBase
	Value string
}

func NewText(tokens []*Token, span *Span, value string) *Text {
	return &Text{nodeBase{tokens, span}, value}
}

func (n *Text) Visit(v Visitor, context any) any { return v.VisitText(n, context) }

// IsInterpolation reports whether this text run is an interpolation.
func (n *Text) IsInterpolation() bool {
	return len(n.tokens) > 0 && n.tokens[0].Type == TokenInterpolationStart
}

// Expansion is an ICU expansion form, e.g. {count, plural, =0 {none}}.
type Expansion struct {
	nodeBase
	SwitchValue string
	FormType    string
	Cases       []*ExpansionCase
}

func NewExpansion(tokens []*Token, span *Span, switchValue, formType string, cases []*ExpansionCase) *Expansion {
	return &Expansion{nodeBase{tokens, span}, switchValue, formType, cases}
}

func (n *Expansion) Visit(v Visitor, context any) any { return v.VisitExpansion(n, context) }

type ExpansionCase struct {
	nodeBase
	Value      string
	Expression []Node
}

func NewExpansionCase(tokens []*Token, span *Span, value string, expression []Node) *ExpansionCase {
	return &ExpansionCase{nodeBase{tokens, span}, value, expression}
}

func (n *ExpansionCase) Visit(v Visitor, context any) any { return v.VisitExpansionCase(n, context) }

type Attribute struct {
	nodeBase
	Name      string
	Value     string
	ValueSpan *Span // nil when the attribute has no value
}

func NewAttribute(tokens []*Token, span *Span, name, value string, valueSpan *Span) *Attribute {
	return &Attribute{nodeBase{tokens, span}, name, value, valueSpan}
}

func (n *Attribute) Visit(v Visitor, context any) any { return v.VisitAttribute(n, context) }

type Element struct {
	nodeBase
	Name         string
	Attrs        []*Attribute
	Children     []Node
	StartTagSpan *Span
	EndTagSpan   *Span // nil for void and self-closing elements
}

func NewElement(tokens []*Token, span *Span, name string, attrs []*Attribute, children []Node, startTagSpan, endTagSpan *Span) *Element {
	return &Element{nodeBase{tokens, span}, name, attrs, children, startTagSpan, endTagSpan}
}

func (n *Element) Visit(v Visitor, context any) any { return v.VisitElement(n, context) }

type Comment struct {
	nodeBase
	Value *string // nil when the comment has no content
}

func NewComment(tokens []*Token, span *Span, value *string) *Comment {
	return &Comment{nodeBase{tokens, span}, value}
}

func (n *Comment) Visit(v Visitor, context any) any { return v.VisitComment(n, context) }

// VisitAll maps nodes to results, running the visitor's pre-visit hook first
// when it has one. Only non-nil results are collected.
func VisitAll(v Visitor, nodes []Node, context any) []any {
	var results []any
	for _, n := range nodes {
		if r := visit(v, n, context); r != nil {
			results = append(results, r)
		}
	}
	return results
}

func visit(v Visitor, n Node, context any) any {
	if pv, ok := v.(PreVisitor); ok {
		if r := pv.Visit(n, context); r != nil {
			return r
		}
	}
	return n.Visit(v, context)
}

// RecursiveVisitor is the default traversal base. Kind methods are no-ops
// for leaves; Element descends into attributes then children and Expansion
// into its cases, all through VisitAll so an embedding visitor's pre-visit
// hook still governs pruning. An embedding visitor must assign itself to
// Delegate for its own methods and hook to be dispatched.
type RecursiveVisitor struct {
	Delegate Visitor
}

func (r *RecursiveVisitor) dispatch() Visitor {
	if r.Delegate != nil {
		return r.Delegate
	}
	return r
}

func (r *RecursiveVisitor) VisitText(n *Text, context any) any                   { return nil }
func (r *RecursiveVisitor) VisitAttribute(n *Attribute, context any) any         { return nil }
func (r *RecursiveVisitor) VisitComment(n *Comment, context any) any             { return nil }
func (r *RecursiveVisitor) VisitExpansionCase(n *ExpansionCase, context any) any { return nil }

func (r *RecursiveVisitor) VisitElement(n *Element, context any) any {
	nodes := make([]Node, 0, len(n.Attrs)+len(n.Children))
	for _, a := range n.Attrs {
		nodes = append(nodes, a)
	}
	nodes = append(nodes, n.Children...)
	VisitAll(r.dispatch(), nodes, context)
	return nil
}

func (r *RecursiveVisitor) VisitExpansion(n *Expansion, context any) any {
	nodes := make([]Node, len(n.Cases))
	for i, c := range n.Cases {
		nodes[i] = c
	}
	VisitAll(r.dispatch(), nodes, context)
	return nil
}

// SpanOf computes the effective [start, end) extent of a node for position
// queries. An element ends where its end tag starts, or at the computed end
// of its last child, or degenerately at its own start when it has neither.
func SpanOf(n Node) (start, end int) {
	if el, ok := n.(*Element); ok {
		start = el.Span().Start
		switch {
		case el.EndTagSpan != nil:
			end = el.EndTagSpan.Start
		case len(el.Children) > 0:
			_, end = SpanOf(el.Children[len(el.Children)-1])
		default:
			end = start
		}
		return start, end
	}
	return n.Span().Start, n.Span().End
}

// AncestorPath is the result of a position lookup: the chain of nodes whose
// extent contains the position, outermost first, plus the position itself.
type AncestorPath struct {
	Path     []Node
	Position int
}

// Innermost returns the deepest containing node, or nil for an empty path.
func (p *AncestorPath) Innermost() Node {
	if len(p.Path) == 0 {
		return nil
	}
	return p.Path[len(p.Path)-1]
}

type positionVisitor struct {
	RecursiveVisitor
	position int
	path     []Node
}

// Visit records nodes containing the position and prunes everything else.
// Returning nil lets default dispatch descend into a recorded node's
// children; any non-nil result stops the descent.
func (v *positionVisitor) Visit(n Node, context any) any {
	start, end := SpanOf(n)
	if v.position >= start && v.position < end {
		v.path = append(v.path, n)
		return nil
	}
	return true
}

// FindNode returns the ordered ancestor chain of nodes containing position,
// searched from the top-level node list.
func FindNode(nodes []Node, position int) *AncestorPath {
	v := &positionVisitor{position: position}
	v.Delegate = v
	VisitAll(v, nodes, nil)
	return &AncestorPath{Path: v.path, Position: position}
}

// Package validator checks a built template tree against the element
// schema. It inspects structure only; it never re-validates edited text.
package validator

import (
	"fmt"

	"github.com/frederikprijck/ng-morph/internal/schema"
	"github.com/frederikprijck/ng-morph/internal/template"
)

type DiagnosticLevel int

const (
	LevelError DiagnosticLevel = iota
	LevelWarning
)

type Diagnostic struct {
	Level   DiagnosticLevel
	Message string
	Offset  int
	File    string
}

type Validator struct {
	Diagnostics []Diagnostic
	Schema      *schema.Schema
}

func NewValidator(s *schema.Schema) *Validator {
	return &Validator{Schema: s}
}

func (v *Validator) report(level DiagnosticLevel, file string, offset int, format string, args ...any) {
	v.Diagnostics = append(v.Diagnostics, Diagnostic{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		File:    file,
	})
}

// ValidateDocument walks every element-like node in the document.
func (v *Validator) ValidateDocument(doc *template.Document) {
	for _, root := range doc.Roots() {
		v.validateNode(doc, root)
		for _, d := range root.Descendants(nil) {
			v.validateNode(doc, d)
		}
	}
}

func (v *Validator) validateNode(doc *template.Document, n template.Node) {
	el, ok := n.(template.ElementLike)
	if !ok {
		return
	}
	tag := el.TagName()
	offset := el.Span().Start

	if _, known := v.Schema.Element(tag); !known {
		// Dashed names are assumed to be components.
		if !isComponentName(tag) {
			v.report(LevelWarning, doc.File(), offset, "unknown element <%s>", tag)
		}
		return
	}

	if v.Schema.IsVoid(tag) && len(el.TemplateChildren()) > 0 {
		v.report(LevelError, doc.File(), offset, "void element <%s> must not have children", tag)
	}

	for _, attr := range el.TextAttributes() {
		values := v.Schema.AttributeValues(tag, attr.Name())
		if len(values) == 0 {
			continue
		}
		if !contains(values, attr.Value()) {
			v.report(LevelError, doc.File(), attr.Span().Start,
				"attribute %s=%q on <%s> is not one of %v", attr.Name(), attr.Value(), tag, values)
		}
	}
}

func isComponentName(tag string) bool {
	for _, r := range tag {
		if r == '-' {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

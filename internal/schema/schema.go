// Package schema describes the known template elements: whether a tag is
// void and which attribute values it admits. The default schema is embedded
// CUE; a project may layer its own definitions over it.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed elements.cue
var defaultSchemaCUE []byte

type Schema struct {
	Value cue.Value
}

// DefaultSchema compiles the built-in embedded schema.
func DefaultSchema() *Schema {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(defaultSchemaCUE)
	if err := v.Err(); err != nil {
		panic(fmt.Sprintf("failed to compile default embedded schema: %v", err))
	}
	return &Schema{Value: v}
}

// LoadFullSchema returns the default schema, unified with the project
// schema file when one is readable at path.
func LoadFullSchema(path string) *Schema {
	s := DefaultSchema()
	if path == "" {
		return s
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	ctx := cuecontext.New()
	project := ctx.CompileBytes(content, cue.Filename(path))
	if project.Err() != nil {
		return s
	}
	merged := s.Value.Unify(project)
	if merged.Err() != nil {
		return s
	}
	return &Schema{Value: merged}
}

// Element looks a tag definition up; ok is false for unknown tags.
func (s *Schema) Element(tag string) (cue.Value, bool) {
	v := s.Value.LookupPath(cue.MakePath(cue.Def("#Elements"), cue.Str(tag)))
	return v, v.Exists()
}

// IsVoid reports whether tag is a known void element.
func (s *Schema) IsVoid(tag string) bool {
	el, ok := s.Element(tag)
	if !ok {
		return false
	}
	void, err := el.LookupPath(cue.ParsePath("void")).Bool()
	return err == nil && void
}

// AttributeValues returns the admissible values for an attribute on tag; an
// empty list means any value is accepted.
func (s *Schema) AttributeValues(tag, attr string) []string {
	el, ok := s.Element(tag)
	if !ok {
		return nil
	}
	list := el.LookupPath(cue.MakePath(cue.Str("attributes"), cue.Str(attr), cue.Str("values")))
	if !list.Exists() {
		return nil
	}
	var values []string
	iter, err := list.List()
	if err != nil {
		return nil
	}
	for iter.Next() {
		if v, err := iter.Value().String(); err == nil {
			values = append(values, v)
		}
	}
	return values
}

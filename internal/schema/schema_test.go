package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchemaElements(t *testing.T) {
	s := DefaultSchema()

	if _, ok := s.Element("div"); !ok {
		t.Error("div should be a known element")
	}
	if _, ok := s.Element("ng-template"); !ok {
		t.Error("ng-template should be a known element")
	}
	if _, ok := s.Element("blink"); ok {
		t.Error("blink should be unknown")
	}
}

func TestIsVoid(t *testing.T) {
	s := DefaultSchema()

	if !s.IsVoid("br") || !s.IsVoid("input") {
		t.Error("br and input should be void")
	}
	if s.IsVoid("div") {
		t.Error("div should not be void")
	}
	if s.IsVoid("unknown") {
		t.Error("unknown tags are never void")
	}
}

func TestAttributeValues(t *testing.T) {
	s := DefaultSchema()

	values := s.AttributeValues("input", "type")
	if len(values) == 0 {
		t.Fatal("input type should have an enumerated value list")
	}
	found := false
	for _, v := range values {
		if v == "checkbox" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected checkbox among %v", values)
	}

	if got := s.AttributeValues("div", "id"); got != nil {
		t.Errorf("unconstrained attribute should yield nil, got %v", got)
	}
	if got := s.AttributeValues("a", "href"); len(got) != 0 {
		t.Errorf("open value list should yield nothing, got %v", got)
	}
}

func TestLoadFullSchemaUnifiesProjectFile(t *testing.T) {
	dir := t.TempDir()
	project := `
#Elements: {
	"x-card": {
		attributes: variant: values: ["flat", "raised"]
	}
}
`
	path := filepath.Join(dir, "project.cue")
	if err := os.WriteFile(path, []byte(project), 0644); err != nil {
		t.Fatal(err)
	}

	s := LoadFullSchema(path)
	if _, ok := s.Element("x-card"); !ok {
		t.Error("project element should be known after unification")
	}
	if _, ok := s.Element("div"); !ok {
		t.Error("built-in elements should survive unification")
	}
	values := s.AttributeValues("x-card", "variant")
	if len(values) != 2 {
		t.Errorf("expected 2 variant values, got %v", values)
	}
}

func TestLoadFullSchemaFallsBackOnMissingFile(t *testing.T) {
	s := LoadFullSchema(filepath.Join(t.TempDir(), "nope.cue"))
	if _, ok := s.Element("div"); !ok {
		t.Error("missing project schema should fall back to the default")
	}
}

// Package formatter normalizes template whitespace in place. It works
// through the token edit protocol, so formatting never invalidates the
// offsets of nodes elsewhere in the document.
package formatter

import (
	"io"
	"regexp"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/config"
	"github.com/frederikprijck/ng-morph/internal/template"
)

var interiorWhitespace = regexp.MustCompile(`\s+`)

// Format rewrites doc's text nodes per cfg and writes the rendered
// document to w.
func Format(doc *template.Document, cfg *config.Config, w io.Writer) error {
	for _, root := range doc.Roots() {
		formatNode(root, cfg)
		for _, d := range root.Descendants(nil) {
			formatNode(d, cfg)
		}
	}
	_, err := io.WriteString(w, doc.Text())
	return err
}

func formatNode(n template.Node, cfg *config.Config) {
	switch tn := n.(type) {
	case *template.TextNode:
		if !cfg.TrimText {
			return
		}
		// Whitespace-only runs keep a single space so adjacent inline
		// content does not fuse.
		value := tn.Value()
		collapsed := interiorWhitespace.ReplaceAllString(strings.TrimSpace(value), " ")
		if collapsed == "" && value != "" {
			collapsed = " "
		}
		tn.ChangeText(collapsed)
	case *template.InterpolationNode:
		if cfg.TrimText {
			tn.TrimText()
		}
	}
}

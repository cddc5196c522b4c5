package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frederikprijck/ng-morph/internal/builder"
	"github.com/frederikprijck/ng-morph/internal/config"
	"github.com/frederikprijck/ng-morph/internal/formatter"
	"github.com/frederikprijck/ng-morph/internal/index"
	"github.com/frederikprijck/ng-morph/internal/logger"
	"github.com/frederikprijck/ng-morph/internal/lsp"
	"github.com/frederikprijck/ng-morph/internal/schema"
	"github.com/frederikprijck/ng-morph/internal/template"
	"github.com/frederikprijck/ng-morph/internal/validator"
)

func main() {
	if len(os.Args) < 2 {
		logger.Println("Usage: ngm <command> [arguments]")
		logger.Println("Commands: lsp, check, fmt, rename, index, inspect")
		logger.Println("  check <input_files...>")
		logger.Println("  fmt <input_files...>")
		logger.Println("  rename <file> <old_tag> <new_tag>")
		logger.Println("  index <directory> [tag]")
		logger.Println("  inspect <input_files...>")
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "lsp":
		lsp.RunServer()
	case "check":
		runCheck(os.Args[2:])
	case "fmt":
		runFmt(os.Args[2:])
	case "rename":
		runRename(os.Args[2:])
	case "index":
		runIndex(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	default:
		logger.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatalf("Error loading %s: %v", config.FileName, err)
	}
	return cfg
}

func runCheck(args []string) {
	if len(args) < 1 {
		logger.Println("Usage: ngm check <input_files...>")
		os.Exit(1)
	}

	cfg := loadConfig()
	v := validator.NewValidator(schema.LoadFullSchema(cfg.SchemaPath))

	for _, file := range args {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Printf("Error reading %s: %v\n", file, err)
			continue
		}

		doc, err := builder.ParseAndBuild(file, string(content))
		if err != nil {
			logger.Printf("%s: Syntax error: %v\n", file, err)
			continue
		}

		v.ValidateDocument(doc)
	}

	for _, diag := range v.Diagnostics {
		level := "ERROR"
		if diag.Level == validator.LevelWarning {
			level = "WARNING"
		}
		logger.Printf("%s:%d: %s: %s\n", diag.File, diag.Offset, level, diag.Message)
	}

	if len(v.Diagnostics) > 0 {
		logger.Printf("\nFound %d issues.\n", len(v.Diagnostics))
		os.Exit(1)
	}
	logger.Println("No issues found.")
}

func runFmt(args []string) {
	if len(args) < 1 {
		logger.Println("Usage: ngm fmt <input_files...>")
		os.Exit(1)
	}

	cfg := loadConfig()

	for _, file := range args {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Printf("Error reading %s: %v\n", file, err)
			continue
		}

		doc, err := builder.ParseAndBuild(file, string(content))
		if err != nil {
			logger.Printf("Error parsing %s: %v\n", file, err)
			continue
		}

		var buf bytes.Buffer
		if err := formatter.Format(doc, cfg, &buf); err != nil {
			logger.Printf("Error formatting %s: %v\n", file, err)
			continue
		}

		err = os.WriteFile(file, buf.Bytes(), 0644)
		if err != nil {
			logger.Printf("Error writing %s: %v\n", file, err)
			continue
		}
		logger.Printf("Formatted %s\n", file)
	}
}

func runRename(args []string) {
	if len(args) != 3 {
		logger.Println("Usage: ngm rename <file> <old_tag> <new_tag>")
		os.Exit(1)
	}
	file, oldTag, newTag := args[0], args[1], args[2]

	content, err := os.ReadFile(file)
	if err != nil {
		logger.Fatalf("Error reading %s: %v", file, err)
	}
	doc, err := builder.ParseAndBuild(file, string(content))
	if err != nil {
		logger.Fatalf("Error parsing %s: %v", file, err)
	}

	renamed := 0
	for _, n := range allNodes(doc) {
		el, ok := n.(template.ElementLike)
		if !ok || el.TagName() != oldTag {
			continue
		}
		el.ChangeTagName(newTag)
		renamed++
	}

	if renamed == 0 {
		logger.Printf("No <%s> elements in %s\n", oldTag, file)
		return
	}
	if err := os.WriteFile(file, []byte(doc.Text()), 0644); err != nil {
		logger.Fatalf("Error writing %s: %v", file, err)
	}
	logger.Printf("Renamed %d <%s> elements to <%s> in %s\n", renamed, oldTag, newTag, file)
}

func runIndex(args []string) {
	if len(args) < 1 {
		logger.Println("Usage: ngm index <directory> [tag]")
		os.Exit(1)
	}

	cfg := loadConfig()
	cache, err := index.OpenCache(filepath.Join(args[0], cfg.CachePath))
	if err != nil {
		logger.Printf("Cache unavailable: %v\n", err)
	} else {
		defer cache.Close()
	}

	pi := index.NewProjectIndex(cache)
	if err := pi.ScanDirectory(args[0], cfg); err != nil {
		logger.Fatalf("Error scanning %s: %v", args[0], err)
	}

	if len(args) >= 2 {
		for _, path := range pi.FilesWithTag(args[1]) {
			fmt.Println(path)
		}
		return
	}
	pi.Each(func(syms *index.FileSymbols) {
		fmt.Printf("%s: tags=[%s] refs=[%s]\n",
			syms.Path, strings.Join(syms.Tags, " "), strings.Join(syms.References, " "))
	})
}

func runInspect(args []string) {
	if len(args) < 1 {
		logger.Println("Usage: ngm inspect <input_files...>")
		os.Exit(1)
	}

	for _, file := range args {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Printf("Error reading %s: %v\n", file, err)
			continue
		}
		doc, err := builder.ParseAndBuild(file, string(content))
		if err != nil {
			logger.Printf("Error parsing %s: %v\n", file, err)
			continue
		}
		for _, root := range doc.Roots() {
			printNode(root, 0)
		}
	}
}

func printNode(n template.Node, depth int) {
	label := n.Kind()
	if el, ok := n.(template.ElementLike); ok {
		label += " <" + el.TagName() + ">"
	}
	span := n.Span()
	fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), label, span)
	for _, c := range n.TemplateChildren() {
		printNode(c, depth+1)
	}
}

func allNodes(doc *template.Document) []template.Node {
	var nodes []template.Node
	for _, root := range doc.Roots() {
		nodes = append(nodes, root)
		nodes = append(nodes, root.Descendants(nil)...)
	}
	return nodes
}

package strategy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies a parseable script language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LanguageForExtension maps a file extension (without dot) to its grammar.
func LanguageForExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case "js", "mjs", "cjs", "jsx":
		return LangJavaScript, true
	case "ts":
		return LangTypeScript, true
	case "tsx":
		return LangTSX, true
	default:
		return "", false
	}
}

// ExtOf returns the lowercase extension of name without the leading dot.
func ExtOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Parser wraps tree-sitter for script parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source and returns the syntax tree. The tree may contain
// ERROR nodes; callers decide whether that counts as failure.
func (p *Parser) Parse(source []byte, lang Language) (*sitter.Tree, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree, nil
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// HasSyntaxErrors reports whether the tree contains ERROR or MISSING nodes.
func HasSyntaxErrors(tree *sitter.Tree) bool {
	return tree.RootNode().HasError()
}

// FirstErrorNode returns the first ERROR or MISSING node in document order,
// or nil when the tree is clean.
func FirstErrorNode(root *sitter.Node) *sitter.Node {
	if root == nil {
		return nil
	}
	if root.Type() == "ERROR" || root.IsMissing() {
		return root
	}
	if !root.HasError() {
		return nil
	}
	for i := 0; i < int(root.ChildCount()); i++ {
		if found := FirstErrorNode(root.Child(i)); found != nil {
			return found
		}
	}
	// The error is attributed to this node but no child carries it.
	return root
}

// findNodes collects all nodes of the given types under root in document
// order.
func findNodes(root *sitter.Node, types ...string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		for _, t := range types {
			if node.Type() == t {
				result = append(result, node)
				break
			}
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return result
}

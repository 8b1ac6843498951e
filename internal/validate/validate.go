// Package validate checks mutated file contents for syntax correctness and
// produces structured, per-file positional error records.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ced/internal/project"
	"ced/internal/strategy"
)

// Category classifies a validation error.
type Category string

const (
	CategorySyntax  Category = "syntax"
	CategoryType    Category = "type"
	CategoryRuntime Category = "runtime"
)

// Error is one positional validation finding. Line and column are 1-based.
type Error struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// Report is the aggregated validation result for a snapshot. Valid is true
// iff Errors is empty. Reports are computed fresh from a content snapshot
// and never cached across mutations.
type Report struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors"`
}

// Validator dispatches per-file-type syntax checks. Validation is
// informational: findings never abort batch application.
type Validator struct {
	parser *strategy.Parser
}

// New creates a validator.
func New() *Validator {
	return &Validator{parser: strategy.NewParser()}
}

// Validate checks every file in the snapshot and aggregates findings in
// file-name order.
func (v *Validator) Validate(snap project.Snapshot) Report {
	names := snap.Names()
	sort.Strings(names)

	var errs []Error
	for _, name := range names {
		f := snap[name]
		switch f.Type {
		case project.TypeScript:
			errs = append(errs, v.checkScript(name, f.Content)...)
		case project.TypeMarkup:
			errs = append(errs, checkMarkup(name, f.Content)...)
		case project.TypeStyle:
			errs = append(errs, checkStyle(name, f.Content)...)
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

// checkScript runs a full parse and reports one syntax error at the first
// ERROR or MISSING node's position.
func (v *Validator) checkScript(name, content string) []Error {
	lang, ok := strategy.LanguageForExtension(strategy.ExtOf(name))
	if !ok {
		lang = strategy.LangJavaScript
	}

	tree, err := v.parser.Parse([]byte(content), lang)
	if err != nil {
		return []Error{{File: name, Line: 1, Column: 1, Message: "syntax error: " + err.Error(), Category: CategorySyntax}}
	}
	if !strategy.HasSyntaxErrors(tree) {
		return nil
	}

	node := strategy.FirstErrorNode(tree.RootNode())
	line, column := 1, 1
	if node != nil {
		line = int(node.StartPoint().Row) + 1
		column = int(node.StartPoint().Column) + 1
	}
	return []Error{{File: name, Line: line, Column: column, Message: "syntax error", Category: CategorySyntax}}
}

// voidElements never take closing tags and are excluded from the tag stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var tagPattern = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9-]*)[^>]*?(/?)>`)

type openTag struct {
	name string
	line int
}

// checkMarkup scans lines maintaining a stack of open tag names.
func checkMarkup(name, content string) []Error {
	var errs []Error
	var stack []openTag

	for i, line := range strings.Split(content, "\n") {
		for _, m := range tagPattern.FindAllStringSubmatch(line, -1) {
			closing := m[1] == "/"
			tag := strings.ToLower(m[2])
			selfClosing := m[3] == "/"

			if voidElements[tag] || selfClosing {
				continue
			}
			if !closing {
				stack = append(stack, openTag{name: tag, line: i + 1})
				continue
			}
			if len(stack) > 0 && stack[len(stack)-1].name == tag {
				stack = stack[:len(stack)-1]
				continue
			}
			errs = append(errs, Error{
				File: name, Line: i + 1, Column: 1,
				Message:  fmt.Sprintf("unexpected closing tag </%s>", tag),
				Category: CategorySyntax,
			})
		}
	}

	for _, t := range stack {
		errs = append(errs, Error{
			File: name, Line: t.line, Column: 1,
			Message:  fmt.Sprintf("unclosed tag <%s>", t.name),
			Category: CategorySyntax,
		})
	}
	return errs
}

// checkStyle is a brace-balance scan: `{` increments, `}` decrements, a
// negative counter reports and resets, leftovers report at the last line.
func checkStyle(name, content string) []Error {
	var errs []Error
	depth := 0
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		for col, ch := range line {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					errs = append(errs, Error{
						File: name, Line: i + 1, Column: col + 1,
						Message:  "unexpected closing brace",
						Category: CategorySyntax,
					})
					depth = 0
				}
			}
		}
	}

	if depth > 0 {
		errs = append(errs, Error{
			File: name, Line: len(lines), Column: 1,
			Message:  fmt.Sprintf("%d unclosed brace(s)", depth),
			Category: CategorySyntax,
		})
	}
	return errs
}

package strategy

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ced/internal/edit"
	"ced/internal/logging"
)

// semanticExtensions is the set of script file types the semantic strategy
// can parse.
var semanticExtensions = map[string]bool{
	"js": true, "jsx": true, "ts": true, "tsx": true, "mjs": true, "cjs": true,
}

// Semantic applies named transformations against a parsed structural view of
// script source. When the input does not parse it degrades to text-pattern
// matching instead of silently no-opping.
type Semantic struct {
	parser *Parser
	logger *logging.Logger
}

// NewSemantic creates the semantic strategy. logger may be nil.
func NewSemantic(logger *logging.Logger) *Semantic {
	return &Semantic{parser: NewParser(), logger: logger}
}

// Name implements Strategy.
func (s *Semantic) Name() string { return "semantic" }

// CanHandle implements Strategy.
func (s *Semantic) CanHandle(ext string) bool {
	return semanticExtensions[ext]
}

// Apply implements Strategy. Transformations apply in order against the
// text produced by the previous one; the structural view is re-derived from
// text between steps. On success the final output must still parse; a
// syntactically broken result aborts the FileEdit.
func (s *Semantic) Apply(content string, fe edit.FileEdit) (string, error) {
	lang, ok := LanguageForExtension(ExtOf(fe.TargetFile))
	if !ok {
		lang = LangJavaScript
	}

	tree, err := s.parser.Parse([]byte(content), lang)
	if err != nil || HasSyntaxErrors(tree) {
		s.logger.Warn("input does not parse, entering degraded text mode", map[string]any{
			"file": fe.TargetFile,
		})
		return s.applyDegraded(content, fe.Transformations)
	}

	current := content
	for _, tr := range fe.Transformations {
		current, err = s.applyStructural(current, tr, lang)
		if err != nil {
			return "", err
		}
	}

	tree, err = s.parser.Parse([]byte(current), lang)
	if err != nil || HasSyntaxErrors(tree) {
		return "", edit.Errorf(edit.UnparseableResult,
			"transformations left %s unparseable", fe.TargetFile).WithFile(fe.TargetFile)
	}
	return current, nil
}

func (s *Semantic) applyStructural(src string, tr edit.Transformation, lang Language) (string, error) {
	switch tr.Action {
	case edit.ActionModify:
		return s.applyModify(src, tr, lang)
	case edit.ActionInsertAfter:
		return insertAroundAnchor(src, tr.Target, valueOrCode(tr), false)
	case edit.ActionInsertBefore:
		return insertAroundAnchor(src, tr.Target, valueOrCode(tr), true)
	case edit.ActionRename:
		return renameIdentifier(src, tr.Target, tr.Value)
	case edit.ActionDelete:
		return deleteLinesContaining(src, tr.Target)
	case edit.ActionReplace:
		return replaceFirst(src, tr.Target, valueOrCode(tr))
	case edit.ActionInsertInBody:
		return s.applyInsertInBody(src, tr, lang)
	default:
		return "", edit.Errorf(edit.UnknownEditKind, "unknown transformation action %q", tr.Action)
	}
}

// applyModify resolves the target as a dotted access path against top-level
// bindings and replaces the final segment's value node.
func (s *Semantic) applyModify(src string, tr edit.Transformation, lang Language) (string, error) {
	tree, err := s.parser.Parse([]byte(src), lang)
	if err != nil {
		return "", edit.NewError(edit.ParseFailure, "re-parse failed", err)
	}

	segments := splitPath(tr.Target)
	if len(segments) == 0 {
		return "", notFound(tr.Target)
	}

	source := []byte(src)
	node := topLevelBinding(tree.RootNode(), source, segments[0])
	for _, seg := range segments[1:] {
		if node == nil {
			break
		}
		node = memberOf(node, source, seg)
	}
	if node == nil {
		return "", notFound(tr.Target)
	}

	return src[:int(node.StartByte())] + strings.TrimSpace(valueOrCode(tr)) + src[int(node.EndByte()):], nil
}

// applyInsertInBody locates a function by the name extracted from the
// target and splices code at the start or end of its body.
func (s *Semantic) applyInsertInBody(src string, tr edit.Transformation, lang Language) (string, error) {
	name := functionNameFromTarget(tr.Target)
	if name == "" {
		return "", notFound(tr.Target)
	}

	tree, err := s.parser.Parse([]byte(src), lang)
	if err != nil {
		return "", edit.NewError(edit.ParseFailure, "re-parse failed", err)
	}

	body := findFunctionBody(tree.RootNode(), []byte(src), name)
	if body == nil {
		return "", notFound(tr.Target)
	}

	code := valueOrCode(tr)
	if tr.Position == edit.BodyEnd {
		pos := int(body.EndByte()) - 1
		return src[:pos] + code + "\n" + src[pos:], nil
	}
	pos := int(body.StartByte()) + 1
	return src[:pos] + "\n" + code + src[pos:], nil
}

// splitPath splits a dotted access path into segments, stripping call-like
// suffixes so `config().speed` and `config.speed` address the same binding.
func splitPath(target string) []string {
	var segments []string
	for _, seg := range strings.Split(target, ".") {
		seg = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(seg), "()"))
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// topLevelBinding finds the value bound to name at the top level: a
// var/let/const declarator, a bare assignment, or a class declaration
// (whose body is returned for member traversal).
func topLevelBinding(root *sitter.Node, source []byte, name string) *sitter.Node {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		if found := bindingIn(child, source, name); found != nil {
			return found
		}
	}
	return nil
}

func bindingIn(node *sitter.Node, source []byte, name string) *sitter.Node {
	switch node.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			decl := node.NamedChild(i)
			if decl == nil || decl.Type() != "variable_declarator" {
				continue
			}
			n := decl.ChildByFieldName("name")
			if n != nil && n.Content(source) == name {
				return decl.ChildByFieldName("value")
			}
		}

	case "expression_statement":
		expr := node.NamedChild(0)
		if expr != nil && expr.Type() == "assignment_expression" {
			left := expr.ChildByFieldName("left")
			if left != nil && left.Content(source) == name {
				return expr.ChildByFieldName("right")
			}
		}

	case "class_declaration":
		n := node.ChildByFieldName("name")
		if n != nil && n.Content(source) == name {
			return node.ChildByFieldName("body")
		}

	case "export_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if found := bindingIn(node.NamedChild(i), source, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// memberOf resolves one path segment inside a value node: object literal
// properties, class members, and the first object argument of a call-like
// value.
func memberOf(node *sitter.Node, source []byte, name string) *sitter.Node {
	switch node.Type() {
	case "object":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			pair := node.NamedChild(i)
			if pair == nil || pair.Type() != "pair" {
				continue
			}
			key := pair.ChildByFieldName("key")
			if key != nil && unquote(key.Content(source)) == name {
				return pair.ChildByFieldName("value")
			}
		}

	case "class_body":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			member := node.NamedChild(i)
			if member == nil {
				continue
			}
			switch member.Type() {
			case "field_definition", "public_field_definition":
				prop := member.ChildByFieldName("property")
				if prop == nil {
					prop = member.ChildByFieldName("name")
				}
				if prop != nil && prop.Content(source) == name {
					return member.ChildByFieldName("value")
				}
			case "method_definition":
				n := member.ChildByFieldName("name")
				if n != nil && n.Content(source) == name {
					return member.ChildByFieldName("body")
				}
			}
		}

	case "call_expression", "new_expression":
		args := node.ChildByFieldName("arguments")
		if args == nil {
			return nil
		}
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg != nil && arg.Type() == "object" {
				return memberOf(arg, source, name)
			}
		}
	}
	return nil
}

// findFunctionBody returns the statement_block body of the first function
// with the given name: declarations, class methods, or function-valued
// bindings.
func findFunctionBody(root *sitter.Node, source []byte, name string) *sitter.Node {
	candidates := findNodes(root,
		"function_declaration", "generator_function_declaration", "method_definition", "variable_declarator")

	for _, node := range candidates {
		n := node.ChildByFieldName("name")
		if n == nil || n.Content(source) != name {
			continue
		}

		body := node.ChildByFieldName("body")
		if node.Type() == "variable_declarator" {
			value := node.ChildByFieldName("value")
			if value == nil {
				continue
			}
			switch value.Type() {
			case "arrow_function", "function", "function_expression":
				body = value.ChildByFieldName("body")
			default:
				continue
			}
		}
		if body != nil && body.Type() == "statement_block" {
			return body
		}
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"',
			s[0] == '\'' && s[len(s)-1] == '\'',
			s[0] == '`' && s[len(s)-1] == '`':
			return s[1 : len(s)-1]
		}
	}
	return s
}

func valueOrCode(tr edit.Transformation) string {
	if tr.Code != "" {
		return tr.Code
	}
	return tr.Value
}

func notFound(target string) error {
	return edit.Errorf(edit.TargetNotFound, "target %q not found", truncate(target, 80)).WithTarget(target)
}

// insertAroundAnchor splices code immediately before or after the first
// line containing the literal anchor.
func insertAroundAnchor(src, anchor, code string, before bool) (string, error) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if !strings.Contains(line, anchor) {
			continue
		}
		at := i + 1
		if before {
			at = i
		}
		return strings.Join(splice(lines, at, at, strings.Split(code, "\n")), "\n"), nil
	}
	return "", notFound(anchor)
}

// renameIdentifier replaces the identifier everywhere using word-boundary
// matching. This is a whole-file textual rename, not scope-aware: same-named
// locals in other functions are renamed too.
func renameIdentifier(src, oldName, newName string) (string, error) {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldName) + `\b`)
	if !re.MatchString(src) {
		return "", notFound(oldName)
	}
	return re.ReplaceAllString(src, newName), nil
}

// deleteLinesContaining removes every line containing the literal target.
func deleteLinesContaining(src, target string) (string, error) {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, target) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return "", notFound(target)
	}
	return strings.Join(kept, "\n"), nil
}

// replaceFirst replaces the first literal occurrence of target.
func replaceFirst(src, target, repl string) (string, error) {
	idx := strings.Index(src, target)
	if idx < 0 {
		return "", notFound(target)
	}
	return src[:idx] + repl + src[idx+len(target):], nil
}

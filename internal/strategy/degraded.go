package strategy

import (
	"regexp"
	"sort"
	"strings"

	"ced/internal/edit"
)

// Degraded mode: the text-only fallback the semantic strategy takes when
// structural parsing of the input fails. Every transformation is
// reinterpreted as a pure text operation; structural-only actions raise
// rather than silently corrupting output.
//
// The regex and brace-scan heuristics live in the small named helpers below
// so they can later be swapped for an incremental parser without touching
// the dispatch.

func (s *Semantic) applyDegraded(src string, trs []edit.Transformation) (string, error) {
	current := src
	var err error
	for _, tr := range trs {
		current, err = s.applyDegradedOne(current, tr)
		if err != nil {
			return "", err
		}
	}
	return current, nil
}

func (s *Semantic) applyDegradedOne(src string, tr edit.Transformation) (string, error) {
	switch tr.Action {
	case edit.ActionReplace, edit.ActionModify:
		out, err := replaceFirst(src, tr.Target, valueOrCode(tr))
		if err == nil {
			return out, nil
		}
		if name := functionNameFromTarget(tr.Target); name != "" {
			if spans := functionBlockSpans(src, name); len(spans) > 0 {
				sp := spans[0]
				return src[:sp[0]] + valueOrCode(tr) + src[sp[1]:], nil
			}
		}
		return "", notFound(tr.Target)

	case edit.ActionDelete:
		if isBlockLike(tr.Target) {
			return stripDuplicateBlocks(src, tr.Target)
		}
		return deleteLinesContaining(src, tr.Target)

	case edit.ActionInsertAfter:
		return insertAroundAnchor(src, tr.Target, valueOrCode(tr), false)

	case edit.ActionInsertBefore:
		return insertAroundAnchor(src, tr.Target, valueOrCode(tr), true)

	case edit.ActionRename:
		return renameIdentifier(src, tr.Target, tr.Value)

	case edit.ActionInsertInBody:
		return "", edit.Errorf(edit.UnsupportedInDegradedMode,
			"insert-in-body needs a structural view and the file does not parse").WithTarget(tr.Target)

	default:
		return "", edit.Errorf(edit.UnknownEditKind, "unknown transformation action %q", tr.Action)
	}
}

// isBlockLike reports whether a delete target addresses a code block rather
// than a single line.
func isBlockLike(target string) bool {
	return strings.Contains(target, "function") || strings.Contains(target, "{")
}

var (
	functionDeclPattern = regexp.MustCompile(`function\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	callPattern         = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	identPattern        = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// functionNameFromTarget extracts a function name from a free-form target:
// `function NAME`, `NAME(`, or a bare identifier.
func functionNameFromTarget(target string) string {
	if m := functionDeclPattern.FindStringSubmatch(target); m != nil {
		return m[1]
	}
	if m := callPattern.FindStringSubmatch(target); m != nil {
		return m[1]
	}
	trimmed := strings.TrimSpace(target)
	if identPattern.MatchString(trimmed) {
		return trimmed
	}
	return ""
}

// functionMatchStarts returns the byte offsets where a function with the
// given name begins, in document order. Declaration style wins over method
// style: a `NAME(...)` hit inside a `function NAME(` match is the same
// function, not a second one.
func functionMatchStarts(src, name string) []int {
	declPattern := regexp.MustCompile(`function\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	methodPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\([^)]*\)\s*\{`)

	declMatches := declPattern.FindAllStringIndex(src, -1)
	var starts []int
	for _, m := range declMatches {
		starts = append(starts, m[0])
	}

	for _, m := range methodPattern.FindAllStringIndex(src, -1) {
		inside := false
		for _, d := range declMatches {
			if m[0] >= d[0] && m[0] < d[1] {
				inside = true
				break
			}
		}
		if !inside {
			starts = append(starts, m[0])
		}
	}

	sort.Ints(starts)
	return starts
}

// mergeSpans collapses overlapping spans so removal never double-counts.
func mergeSpans(spans [][2]int) [][2]int {
	if len(spans) < 2 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp[0] <= last[1] {
			if sp[1] > last[1] {
				last[1] = sp[1]
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// functionBlockSpans finds [start, end) byte spans of balanced-brace
// function blocks for the given name, in document order. Both declaration
// style (`function name(...)`) and method style (`name(...) {`) match.
func functionBlockSpans(src, name string) [][2]int {
	var spans [][2]int
	for _, start := range functionMatchStarts(src, name) {
		end := blockEnd(src, start)
		if end < 0 {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

// blockEnd scans from the first '{' at or after from and returns the byte
// index just past its balancing '}', or -1. Braces inside strings are not
// recognized; this is a heuristic for already-unparseable input.
func blockEnd(src string, from int) int {
	open := strings.IndexByte(src[from:], '{')
	if open < 0 {
		return -1
	}
	depth := 0
	for i := from + open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// stripDuplicateBlocks removes textually duplicated copies of a block,
// keeping the first occurrence only. Generated code sometimes arrives with
// the same function appended repeatedly; deleting "the duplicate" means
// deleting every copy after the first. A trailing copy with no balancing
// brace is removed through the next copy or end of file.
func stripDuplicateBlocks(src, target string) (string, error) {
	if name := functionNameFromTarget(target); name != "" {
		starts := functionMatchStarts(src, name)
		if len(starts) == 0 {
			return "", notFound(target)
		}
		var spans [][2]int
		for k := 1; k < len(starts); k++ {
			end := blockEnd(src, starts[k])
			if end < 0 || (k+1 < len(starts) && end > starts[k+1]) {
				if k+1 < len(starts) {
					end = starts[k+1]
				} else {
					end = len(src)
				}
			}
			spans = append(spans, [2]int{starts[k], end})
		}
		return removeSpans(src, mergeSpans(spans)), nil
	}

	// No function name to anchor on: deduplicate exact occurrences of the
	// literal block text.
	first := strings.Index(src, target)
	if first < 0 {
		return "", notFound(target)
	}
	var spans [][2]int
	for idx := first; idx >= 0; {
		next := strings.Index(src[idx+len(target):], target)
		if next < 0 {
			break
		}
		start := idx + len(target) + next
		spans = append(spans, [2]int{start, start + len(target)})
		idx = start
	}
	return removeSpans(src, spans), nil
}

// removeSpans deletes the spans (sorted, non-overlapping) from src, eating
// one trailing newline per span.
func removeSpans(src string, spans [][2]int) string {
	if len(spans) == 0 {
		return src
	}
	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(src[prev:sp[0]])
		prev = sp[1]
		if prev < len(src) && src[prev] == '\n' {
			prev++
		}
	}
	b.WriteString(src[prev:])
	return b.String()
}

// Package edit defines the data model shared by the edit engine: batches,
// per-file edits with kind-tagged payloads, and the engine error taxonomy.
package edit

// EditKind identifies which payload a FileEdit carries and which strategy
// the caller asked for.
type EditKind string

const (
	// KindSemantic requests structural transformations over parsed source.
	KindSemantic EditKind = "semantic"
	// KindTextPatch requests ordered literal find/replace patches.
	KindTextPatch EditKind = "textPatch"
	// KindLineRange requests explicit 1-based line operations.
	KindLineRange EditKind = "lineRange"
)

// Action names a semantic transformation.
type Action string

const (
	ActionModify       Action = "modify"
	ActionInsertAfter  Action = "insert-after"
	ActionInsertBefore Action = "insert-before"
	ActionRename       Action = "rename"
	ActionDelete       Action = "delete"
	ActionReplace      Action = "replace"
	ActionInsertInBody Action = "insert-in-body"
)

// BodyPosition selects where insert-in-body splices code inside a function.
type BodyPosition string

const (
	BodyStart BodyPosition = "start"
	BodyEnd   BodyPosition = "end"
)

// Transformation is one semantic edit instruction. Target is either a dotted
// access path (for modify) or literal source text to anchor on.
type Transformation struct {
	Action   Action       `json:"action" yaml:"action"`
	Target   string       `json:"target" yaml:"target"`
	Value    string       `json:"value,omitempty" yaml:"value,omitempty"`
	Code     string       `json:"code,omitempty" yaml:"code,omitempty"`
	Position BodyPosition `json:"position,omitempty" yaml:"position,omitempty"`
}

// Patch is one literal find/replace instruction. Only the first occurrence
// of Find at application time is replaced.
type Patch struct {
	Find    string `json:"find" yaml:"find"`
	Replace string `json:"replace" yaml:"replace"`
}

// LineOpKind identifies a line operation.
type LineOpKind string

const (
	LineReplace LineOpKind = "replace"
	LineInsert  LineOpKind = "insert"
	LineDelete  LineOpKind = "delete"
)

// LineOperation is one 1-based line edit. Replace and delete use the
// inclusive [StartLine, EndLine] window; insert places Content after
// AfterLine, where AfterLine 0 means prepend.
type LineOperation struct {
	Kind      LineOpKind `json:"kind" yaml:"kind"`
	StartLine int        `json:"startLine,omitempty" yaml:"startLine,omitempty"`
	EndLine   int        `json:"endLine,omitempty" yaml:"endLine,omitempty"`
	AfterLine int        `json:"afterLine,omitempty" yaml:"afterLine,omitempty"`
	Content   string     `json:"content,omitempty" yaml:"content,omitempty"`
}

// SortKey returns the line number the operation anchors on, used for the
// mandated descending application order.
func (op LineOperation) SortKey() int {
	if op.Kind == LineInsert {
		return op.AfterLine
	}
	return op.StartLine
}

// FileEdit is the atomic unit of the engine: all instructions for one file.
// Exactly one payload slice is populated, selected by Kind; the selector
// matches on Kind exhaustively rather than sniffing populated fields.
//
// FallbackLines optionally carries line operations the orchestrator may use
// to retry the file after the primary strategy fails.
type FileEdit struct {
	TargetFile      string           `json:"targetFile" yaml:"targetFile"`
	Kind            EditKind         `json:"editKind" yaml:"editKind"`
	Transformations []Transformation `json:"transformations,omitempty" yaml:"transformations,omitempty"`
	Patches         []Patch          `json:"patches,omitempty" yaml:"patches,omitempty"`
	LineOps         []LineOperation  `json:"lineOperations,omitempty" yaml:"lineOperations,omitempty"`
	FallbackLines   []LineOperation  `json:"fallbackLines,omitempty" yaml:"fallbackLines,omitempty"`
}

// Batch is one caller-submitted collection of file edits, applied together
// and in order. Batches are built per request and never reused.
type Batch struct {
	Edits []FileEdit `json:"edits" yaml:"edits"`
}

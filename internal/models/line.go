package models

// LineKind classifies a line's raw bytes.
type LineKind int

const (
	LineText   LineKind = iota // no zero byte
	LineBinary                 // at least one zero byte
)

// String returns a human-readable name for the kind
func (k LineKind) String() string {
	if k == LineBinary {
		return "binary"
	}
	return "text"
}

// Line is one line of a source with its trailing newline removed.
// Kind is computed once when the line is read and is never re-derived.
type Line struct {
	Data   []byte   // Raw bytes, not necessarily valid UTF-8
	Number int      // 1-based line number within the source
	Kind   LineKind // Text or Binary
}

// IsBinary reports whether the line was classified as binary
func (l Line) IsBinary() bool {
	return l.Kind == LineBinary
}

// MatchSpan is the byte range [Offset, Offset+Length) of one sub-match.
type MatchSpan struct {
	Offset int
	Length int
}

// End returns the exclusive end offset of the span
func (s MatchSpan) End() int {
	return s.Offset + s.Length
}

// Verdict is the outcome of evaluating one line against a pattern set.
// Spans is empty for inverted matches and for non-matches.
type Verdict struct {
	Matched bool
	Spans   []MatchSpan
}

// NotMatched is the verdict for a line that did not match
var NotMatched = Verdict{}

package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/harrison/lgrep/internal/models"
)

// ErrNoPatterns is returned when a run has no pattern to compile
var ErrNoPatterns = errors.New("no pattern given")

// Matcher reports where a compiled pattern matches a line.
type Matcher interface {
	// FindAll returns the match spans for b in left-to-right, non-overlapping
	// order, or nil if the pattern does not match.
	FindAll(b []byte) []models.MatchSpan

	// String returns the pattern as the user supplied it
	String() string
}

// Flags are the per-pattern compile options.
type Flags struct {
	Literal    bool // match the pattern as a fixed string
	IgnoreCase bool // case-insensitive matching
}

// CompileError identifies the pattern that failed to compile and why.
type CompileError struct {
	Index   int    // position of the pattern in the set
	Pattern string // pattern as supplied by the user
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// regexpMatcher binds Matcher to the standard regexp engine
type regexpMatcher struct {
	re  *regexp.Regexp
	raw string
}

func (m *regexpMatcher) FindAll(b []byte) []models.MatchSpan {
	locs := m.re.FindAllIndex(b, -1)
	if locs == nil {
		return nil
	}
	spans := make([]models.MatchSpan, len(locs))
	for i, loc := range locs {
		spans[i] = models.MatchSpan{Offset: loc[0], Length: loc[1] - loc[0]}
	}
	return spans
}

func (m *regexpMatcher) String() string {
	return m.raw
}

// Compile turns a raw pattern into a Matcher for the given dialect.
// In literal mode every metacharacter of that dialect is escaped first,
// so the whole pattern matches as a fixed substring.
func Compile(raw string, dialect models.Dialect, flags Flags) (Matcher, error) {
	expr := raw
	if flags.Literal {
		expr = EscapeLiteral(raw, dialect)
	}

	var err error
	switch dialect {
	case models.DialectBasic:
		expr, err = translateBasic(expr)
		if err != nil {
			return nil, err
		}
	case models.DialectExtended:
		expr = translateExtended(expr)
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}

	if flags.IgnoreCase {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	// POSIX dialects pick the leftmost-longest match
	re.Longest()
	return &regexpMatcher{re: re, raw: raw}, nil
}

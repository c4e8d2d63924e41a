package pattern

import (
	"github.com/harrison/lgrep/internal/models"
)

// Set is an ordered, read-only collection of compiled matchers.
// A line matches the set if any matcher matches it.
type Set struct {
	matchers []Matcher
}

// NewSet builds a Set from already compiled matchers, preserving order
func NewSet(matchers ...Matcher) (*Set, error) {
	if len(matchers) == 0 {
		return nil, ErrNoPatterns
	}
	return &Set{matchers: append([]Matcher(nil), matchers...)}, nil
}

// CompileAll compiles every pattern in order. The first failure aborts
// compilation and is returned as a *CompileError.
func CompileAll(raws []string, dialect models.Dialect, flags Flags) (*Set, error) {
	if len(raws) == 0 {
		return nil, ErrNoPatterns
	}

	matchers := make([]Matcher, 0, len(raws))
	for i, raw := range raws {
		m, err := Compile(raw, dialect, flags)
		if err != nil {
			return nil, &CompileError{Index: i, Pattern: raw, Err: err}
		}
		matchers = append(matchers, m)
	}
	return &Set{matchers: matchers}, nil
}

// Len returns the number of matchers in the set
func (s *Set) Len() int {
	return len(s.matchers)
}

// Matchers returns the matchers in declaration order
func (s *Set) Matchers() []Matcher {
	return s.matchers
}

package pattern

import (
	"strings"

	"github.com/harrison/lgrep/internal/models"
)

// Metacharacters of each dialect. Literal mode escapes exactly the set of
// the active dialect.
const (
	ExtendedSpecialChars = `.^$*+?()[{\|`
	BasicSpecialChars    = `.^$*[\`
)

// SpecialChars returns the metacharacter set of a dialect
func SpecialChars(dialect models.Dialect) string {
	if dialect == models.DialectExtended {
		return ExtendedSpecialChars
	}
	return BasicSpecialChars
}

// EscapeLiteral backslash-escapes every metacharacter of the dialect in s.
func EscapeLiteral(s string, dialect models.Dialect) string {
	special := SpecialChars(dialect)

	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

package pattern

import (
	"fmt"
	"strings"
)

// translateBasic rewrites a POSIX basic regular expression into the syntax
// accepted by the regexp package.
//
// In the basic dialect \( \) \{ \} \| \+ \? are operators and the bare
// characters are literals; a '*' at the start of an expression is literal;
// '^' and '$' anchor only at the edges of an expression.
func translateBasic(expr string) (string, error) {
	var b strings.Builder
	b.Grow(len(expr) + 8)

	atStart := true
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '\\':
			if i+1 >= len(expr) {
				return "", fmt.Errorf("trailing backslash")
			}
			i++
			next := expr[i]
			switch next {
			case '(', '|':
				b.WriteByte(next)
				atStart = true
				continue
			case ')', '{', '}', '+', '?':
				b.WriteByte(next)
			case '<', '>':
				b.WriteString(`\b`)
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				return "", fmt.Errorf("back-reference \\%c is not supported", next)
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
		case '(', ')', '{', '}', '|', '+', '?':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '*':
			if atStart {
				b.WriteString(`\*`)
			} else {
				b.WriteByte('*')
			}
		case '^':
			if atStart {
				b.WriteByte('^')
				// "^*" still has '*' at the start of the expression
				continue
			}
			b.WriteString(`\^`)
		case '$':
			if atExpressionEnd(expr, i+1) {
				b.WriteByte('$')
			} else {
				b.WriteString(`\$`)
			}
		case '[':
			n := copyBracket(&b, expr[i:])
			i += n - 1
		default:
			b.WriteByte(c)
		}
		atStart = false
	}
	return b.String(), nil
}

// translateExtended rewrites the bracket expressions of a POSIX extended
// regular expression for the regexp package. Everything outside brackets
// already has the same meaning in both syntaxes and is copied unchanged.
func translateExtended(expr string) string {
	var b strings.Builder
	b.Grow(len(expr) + 8)

	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '\\':
			b.WriteByte(c)
			if i+1 < len(expr) {
				i++
				b.WriteByte(expr[i])
			}
		case '[':
			n := copyBracket(&b, expr[i:])
			i += n - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// atExpressionEnd reports whether position i ends a (sub)expression
func atExpressionEnd(expr string, i int) bool {
	rest := expr[i:]
	return rest == "" || strings.HasPrefix(rest, `\)`) || strings.HasPrefix(rest, `\|`)
}

// copyBracket copies the bracket expression at the start of s into b and
// returns the number of bytes consumed. Backslash is literal inside a POSIX
// bracket expression, so it is escaped for regexp. An unterminated bracket is
// copied verbatim and left for regexp to reject.
func copyBracket(b *strings.Builder, s string) int {
	i := 1
	if i < len(s) && s[i] == '^' {
		i++
	}
	// A ']' first in the list is a literal
	if i < len(s) && s[i] == ']' {
		i++
	}
	for i < len(s) && s[i] != ']' {
		if s[i] == '[' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '=' || s[i+1] == '.') {
			delim := s[i+1]
			if end := strings.Index(s[i+2:], string(delim)+"]"); end >= 0 {
				i += end + 4
				continue
			}
		}
		i++
	}
	if i >= len(s) {
		b.WriteString(s)
		return len(s)
	}

	body := s[:i+1]
	b.WriteString(strings.ReplaceAll(body, `\`, `\\`))
	return i + 1
}

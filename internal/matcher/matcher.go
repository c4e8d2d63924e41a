// Package matcher classifies lines and evaluates them against a pattern set.
package matcher

import (
	"bytes"

	"github.com/harrison/lgrep/internal/models"
	"github.com/harrison/lgrep/internal/pattern"
)

// Classify returns LineBinary if b contains a zero byte, else LineText.
func Classify(b []byte) models.LineKind {
	if bytes.IndexByte(b, 0) >= 0 {
		return models.LineBinary
	}
	return models.LineText
}

// NewLine builds a classified Line. The slice is retained, not copied.
func NewLine(data []byte, number int) models.Line {
	return models.Line{Data: data, Number: number, Kind: Classify(data)}
}

// Evaluate runs the set's matchers over the line in declaration order.
// The first matcher to succeed supplies the spans. With invert set the
// outcome is flipped before spans are used, so an inverted match never
// carries spans.
func Evaluate(line models.Line, set *pattern.Set, invert bool) models.Verdict {
	var spans []models.MatchSpan
	for _, m := range set.Matchers() {
		if spans = m.FindAll(line.Data); spans != nil {
			break
		}
	}

	matched := spans != nil
	if invert {
		if matched {
			return models.NotMatched
		}
		return models.Verdict{Matched: true}
	}
	if !matched {
		return models.NotMatched
	}
	return models.Verdict{Matched: true, Spans: spans}
}

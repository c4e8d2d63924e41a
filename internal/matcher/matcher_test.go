package matcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harrison/lgrep/internal/models"
	"github.com/harrison/lgrep/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSet(t *testing.T, dialect models.Dialect, flags pattern.Flags, raws ...string) *pattern.Set {
	t.Helper()
	set, err := pattern.CompileAll(raws, dialect, flags)
	require.NoError(t, err)
	return set
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  models.LineKind
	}{
		{"empty", []byte{}, models.LineText},
		{"plain text", []byte("hello"), models.LineText},
		{"high bytes", []byte{0xff, 0xfe, 'a'}, models.LineText},
		{"zero byte", []byte{'a', 0, 'b'}, models.LineBinary},
		{"only zero", []byte{0}, models.LineBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLine(t *testing.T) {
	line := NewLine([]byte("a\x00b"), 7)
	assert.Equal(t, 7, line.Number)
	assert.True(t, line.IsBinary())
	assert.Equal(t, "binary", line.Kind.String())
}

func TestEvaluateScenarios(t *testing.T) {
	inputs := []string{"concatenate", "dog", "Cat"}

	t.Run("case sensitive", func(t *testing.T) {
		set := compileSet(t, models.DialectBasic, pattern.Flags{}, "cat")

		var matched []int
		for i, in := range inputs {
			v := Evaluate(NewLine([]byte(in), i+1), set, false)
			if v.Matched {
				matched = append(matched, i+1)
			}
			if i == 0 {
				want := []models.MatchSpan{{Offset: 3, Length: 3}}
				if diff := cmp.Diff(want, v.Spans); diff != "" {
					t.Errorf("spans mismatch (-want +got):\n%s", diff)
				}
			}
		}
		assert.Equal(t, []int{1}, matched)
	})

	t.Run("case insensitive", func(t *testing.T) {
		set := compileSet(t, models.DialectBasic, pattern.Flags{IgnoreCase: true}, "cat")

		var matched []int
		for i, in := range inputs {
			if Evaluate(NewLine([]byte(in), i+1), set, false).Matched {
				matched = append(matched, i+1)
			}
		}
		assert.Equal(t, []int{1, 3}, matched)
	})

	t.Run("inverted carries no spans", func(t *testing.T) {
		set := compileSet(t, models.DialectBasic, pattern.Flags{}, "xyz")

		for i, in := range inputs {
			v := Evaluate(NewLine([]byte(in), i+1), set, true)
			assert.True(t, v.Matched, "line %d", i+1)
			assert.Empty(t, v.Spans, "line %d", i+1)
		}
	})
}

func TestEvaluateFirstMatchingPatternWins(t *testing.T) {
	set := compileSet(t, models.DialectExtended, pattern.Flags{}, "zzz", "b+", "a")

	v := Evaluate(NewLine([]byte("abba"), 1), set, false)
	require.True(t, v.Matched)

	// "a" would also match, but "b+" is declared first
	want := []models.MatchSpan{{Offset: 1, Length: 2}}
	if diff := cmp.Diff(want, v.Spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateInvertIsNegation(t *testing.T) {
	set := compileSet(t, models.DialectExtended, pattern.Flags{}, "^a", "[0-9]{3}", "end$")

	lines := []string{
		"",
		"abc",
		"xyz",
		"call 911",
		"the end",
		"the end.",
		"\x00binary a",
		"a\x00",
	}

	for _, in := range lines {
		line := NewLine([]byte(in), 1)
		plain := Evaluate(line, set, false)
		inverted := Evaluate(line, set, true)
		if plain.Matched == inverted.Matched {
			t.Errorf("line %q: plain=%v inverted=%v, want negation", in, plain.Matched, inverted.Matched)
		}
	}
}

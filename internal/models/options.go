package models

import (
	"fmt"
	"strings"
)

// Dialect selects the regular-expression syntax used to compile patterns.
type Dialect string

const (
	DialectBasic    Dialect = "basic"
	DialectExtended Dialect = "extended"
)

// ParseDialect converts a user-supplied dialect name to a Dialect
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "bre", "":
		return DialectBasic, nil
	case "extended", "ere":
		return DialectExtended, nil
	default:
		return "", fmt.Errorf("invalid dialect %q, must be one of: basic, extended", s)
	}
}

// BinaryMode is the policy applied to lines containing a zero byte.
type BinaryMode string

const (
	BinaryModeBinary BinaryMode = "binary" // report "binary file X matches" and stop the source
	BinaryModeText   BinaryMode = "text"   // treat binary lines like text
	BinaryModeSkip   BinaryMode = "skip"   // ignore binary lines entirely
)

// ParseBinaryMode converts a --binary-mode value to a BinaryMode
func ParseBinaryMode(s string) (BinaryMode, error) {
	switch BinaryMode(s) {
	case BinaryModeBinary, BinaryModeText, BinaryModeSkip:
		return BinaryMode(s), nil
	default:
		return "", fmt.Errorf("invalid binary mode %q, must be one of: binary, text, skip", s)
	}
}

// ColorMode controls when colored output is used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode converts a --color value to a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", s)
	}
}

// Enabled resolves the mode against whether the output is a terminal
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

package pattern

import (
	"bytes"
	"fmt"
	"os"
)

// LoadFile reads patterns from path, one per line. Empty lines are valid
// patterns that match every line; the empty remainder after a final newline
// is not a pattern.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}
	return splitPatterns(data), nil
}

func splitPatterns(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	lines := bytes.Split(data, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	patterns := make([]string, len(lines))
	for i, line := range lines {
		patterns[i] = string(line)
	}
	return patterns
}

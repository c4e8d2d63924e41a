package models

// RunTally tracks match counters for a run. It is owned by the source
// walker and mutated only from its goroutine.
type RunTally struct {
	// AnyMatch is true once any line in any source matched
	AnyMatch bool

	// SourceCount is the number of matched lines in the current source
	SourceCount int

	// TotalCount is the number of matched lines across all sources
	TotalCount int
}

// StartSource resets the per-source counter at a source boundary
func (t *RunTally) StartSource() {
	t.SourceCount = 0
}

// Record notes one matched line
func (t *RunTally) Record() {
	t.AnyMatch = true
	t.SourceCount++
	t.TotalCount++
}

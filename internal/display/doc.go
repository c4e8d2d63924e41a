// Package display renders search results to the primary output stream.
//
// A Presenter receives one verdict per line from the source walker and
// decides, in a fixed order, what to do with it:
//
//  1. A binary line under the skip policy is ignored.
//  2. A line that did not match is ignored.
//  3. In quiet mode the match is acknowledged and nothing is printed.
//  4. In count mode the match is acknowledged for the per-source tally.
//  5. A matching binary line under the binary policy prints a single
//     "binary file NAME matches" notice and tells the walker to stop the
//     source.
//  6. Anything else is printed with its optional prefixes.
//
// The walker acts on the returned Outcome:
//
//	switch presenter.Present(verdict, line, name, showFilename) {
//	case display.OutcomeStop:
//	    // finish this source
//	case display.OutcomeMatched, display.OutcomeCounted:
//	    tally.Record()
//	}
//
// At the end of each source in count mode the walker calls FlushCount,
// which prints "count" or "name:count".
//
// # Colors
//
// Colors come from fatih/color and are forced on or off from the resolved
// configuration, so they never depend on the process environment:
//   - Blue for the "name:" prefix and the file name in binary notices
//   - Magenta for the "lineno:" prefix
//   - Green for every match span
//
// Stripping the escape sequences from a printed line always gives back
// the original line bytes.
package display

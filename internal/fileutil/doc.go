// Package fileutil expands directory sources into the files they contain.
//
// Expand walks a directory depth-first and yields every entry that is not
// itself a directory as a Leaf. The walk is lazy: entries are read only as
// the caller ranges over the sequence, and stopping the range stops the
// walk. Each call to Expand starts a fresh walk.
//
// # Error Tolerance
//
// A directory that cannot be read does not end the walk. The error is
// yielded alongside a zero Leaf and the walk continues with the next entry
// of the parent directory:
//
//	for leaf, err := range fileutil.Expand("src") {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    scan(leaf.Path)
//	}
//
// # Ordering
//
// Entries are visited in the order os.ReadDir returns them (sorted by
// name). Symbolic links to directories are followed; there is no cycle
// detection.
package fileutil

package badger

import "fmt"

// Key prefixes for different data types
const (
	fragmentPrefix   = "frarec"
	unenrichedPrefix = "frapend"
)

// makeFragmentKey generates a key for a fragment by ID.
func makeFragmentKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", fragmentPrefix, id))
}

// makeUnenrichedKey generates a key for the pending-metadata index.
// The index holds one empty entry per fragment with HasMetadata=false;
// the entry is removed when enrichment is applied.
func makeUnenrichedKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", unenrichedPrefix, id))
}

// Package ingestion turns raw document text into stored fragments and
// queued enrichment tasks.
//
// The splitter bounds fragment size while preferring sentence
// boundaries. Fragments are content-addressed, so ingesting the same
// text twice neither duplicates storage nor discards enrichment already
// computed for it.
package ingestion

// Package reprocess backfills enrichment for fragments that were stored
// without it.
//
// The store-first protocol guarantees fragments are queryable before
// their enrichment lands, which also means a crash, a full queue, or a
// long service outage can leave fragments permanently unenriched. The
// Backfiller walks the store's pending-metadata index and resubmits
// those fragments at low priority, respecting the processor's
// backpressure.
package reprocess

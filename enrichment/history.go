package enrichment

import "github.com/google/uuid"

// historyRing retains the IDs of recently finished tasks so Status and
// Result stay answerable after completion. When full, adding evicts the
// oldest entry. Not safe for concurrent use; callers hold the processor
// mutex.
type historyRing struct {
	ids   []uuid.UUID
	next  int
	count int
}

func newHistoryRing(size int) *historyRing {
	if size < 1 {
		size = 1
	}
	return &historyRing{ids: make([]uuid.UUID, size)}
}

// add records an ID and returns the evicted one, if any.
func (r *historyRing) add(id uuid.UUID) (uuid.UUID, bool) {
	var evicted uuid.UUID
	full := r.count == len(r.ids)
	if full {
		evicted = r.ids[r.next]
	} else {
		r.count++
	}
	r.ids[r.next] = id
	r.next = (r.next + 1) % len(r.ids)
	return evicted, full
}

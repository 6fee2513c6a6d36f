package slideshow

// historyEntry pairs a shown image with its sequence number in the pass so
// position reporting stays correct after older entries are evicted.
type historyEntry struct {
	path string
	seq  int
}

// history is the bounded navigation trail. The cursor points at the
// displayed entry and is -1 only while the trail is empty.
type history struct {
	entries []historyEntry
	cursor  int
	limit   int
}

func newHistory(limit int) *history {
	return &history{cursor: -1, limit: limit}
}

func (h *history) len() int {
	return len(h.entries)
}

func (h *history) current() (historyEntry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return historyEntry{}, false
	}
	return h.entries[h.cursor], true
}

// push appends a newly shown image and moves the cursor onto it, evicting
// the oldest entries past the limit. Only ever called with the cursor at
// the end of the trail.
func (h *history) push(path string, seq int) {
	h.entries = append(h.entries, historyEntry{path: path, seq: seq})
	for len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

func (h *history) canBack() bool {
	return h.cursor > 0
}

func (h *history) back() (historyEntry, bool) {
	if !h.canBack() {
		return historyEntry{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *history) forward() (historyEntry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return historyEntry{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *history) reset() {
	h.entries = nil
	h.cursor = -1
}

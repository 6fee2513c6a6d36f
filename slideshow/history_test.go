package slideshow

import "testing"

func TestHistoryEmpty(t *testing.T) {
	h := newHistory(5)

	if got := h.len(); got != 0 {
		t.Errorf("len = %d, want 0", got)
	}
	if h.cursor != -1 {
		t.Errorf("cursor = %d, want -1", h.cursor)
	}
	if _, ok := h.current(); ok {
		t.Error("current on empty history should not be ok")
	}
	if _, ok := h.back(); ok {
		t.Error("back on empty history should not be ok")
	}
	if _, ok := h.forward(); ok {
		t.Error("forward on empty history should not be ok")
	}
}

func TestHistoryPushMovesCursor(t *testing.T) {
	h := newHistory(5)
	h.push("a.jpg", 1)
	h.push("b.jpg", 2)

	entry, ok := h.current()
	if !ok {
		t.Fatal("current should be ok")
	}
	if entry.path != "b.jpg" || entry.seq != 2 {
		t.Errorf("current = %+v, want b.jpg seq 2", entry)
	}
	if h.cursor != 1 {
		t.Errorf("cursor = %d, want 1", h.cursor)
	}
}

func TestHistoryBackForward(t *testing.T) {
	h := newHistory(5)
	h.push("a.jpg", 1)
	h.push("b.jpg", 2)
	h.push("c.jpg", 3)

	entry, ok := h.back()
	if !ok || entry.path != "b.jpg" {
		t.Fatalf("back = %+v ok=%v, want b.jpg", entry, ok)
	}
	entry, ok = h.back()
	if !ok || entry.path != "a.jpg" {
		t.Fatalf("back = %+v ok=%v, want a.jpg", entry, ok)
	}
	if _, ok := h.back(); ok {
		t.Error("back past the oldest entry should not be ok")
	}

	entry, ok = h.forward()
	if !ok || entry.path != "b.jpg" {
		t.Fatalf("forward = %+v ok=%v, want b.jpg", entry, ok)
	}
	entry, ok = h.forward()
	if !ok || entry.path != "c.jpg" {
		t.Fatalf("forward = %+v ok=%v, want c.jpg", entry, ok)
	}
	if _, ok := h.forward(); ok {
		t.Error("forward past the newest entry should not be ok")
	}
}

func TestHistoryEviction(t *testing.T) {
	h := newHistory(3)
	for i := 1; i <= 10; i++ {
		h.push("img.jpg", i)
	}

	if got := h.len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
	if h.entries[0].seq != 8 {
		t.Errorf("oldest seq = %d, want 8", h.entries[0].seq)
	}
	entry, _ := h.current()
	if entry.seq != 10 {
		t.Errorf("current seq = %d, want 10", entry.seq)
	}
	if h.cursor != 2 {
		t.Errorf("cursor = %d, want 2", h.cursor)
	}
}

func TestHistoryReset(t *testing.T) {
	h := newHistory(3)
	h.push("a.jpg", 1)
	h.reset()

	if h.len() != 0 || h.cursor != -1 {
		t.Errorf("after reset len = %d cursor = %d, want 0 and -1", h.len(), h.cursor)
	}
}

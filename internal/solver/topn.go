package solver

import (
	"container/heap"
	"sort"
)

// topN keeps the best builds seen so far, bounded in count. The heap
// root is the worst kept build, so a qualifying newcomer replaces it
// in O(log n). Equal scores rank by discovery order, earliest first.
type topN struct {
	limit int
	h     buildHeap
}

func newTopN(limit int) *topN {
	return &topN{limit: limit}
}

func (t *topN) consider(b Build) {
	if t.limit <= 0 {
		return
	}
	if t.h.Len() < t.limit {
		heap.Push(&t.h, b)
		return
	}
	if t.h[0].worseThan(b) {
		t.h[0] = b
		heap.Fix(&t.h, 0)
	}
}

// merge folds another collection into this one.
func (t *topN) merge(other *topN) {
	for _, b := range other.h {
		t.consider(b)
	}
}

// finalize returns the kept builds, best first.
func (t *topN) finalize() []Build {
	out := make([]Build, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].order.before(out[j].order)
	})
	return out
}

// worseThan reports whether b ranks strictly better than the receiver.
func (a Build) worseThan(b Build) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return b.order.before(a.order)
}

// buildHeap implements container/heap keyed worst-build-first.
type buildHeap []Build

func (h buildHeap) Len() int           { return len(h) }
func (h buildHeap) Less(i, j int) bool { return h[i].worseThan(h[j]) }
func (h buildHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *buildHeap) Push(x any)        { *h = append(*h, x.(Build)) }
func (h *buildHeap) Pop() any {
	old := *h
	n := len(old)
	b := old[n-1]
	*h = old[:n-1]
	return b
}

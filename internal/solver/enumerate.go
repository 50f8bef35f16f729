package solver

import (
	"github.com/varkala/relicsmith/internal/urn"
)

// buildOrder is the discovery position of a build: which layout, which
// first slot choice, then a running count inside that partition. The
// sequential search emits builds in exactly this order, so ranking ties
// by it keeps parallel results identical to sequential ones.
type buildOrder struct {
	layout int
	head   int
	ord    int
}

func (a buildOrder) before(b buildOrder) bool {
	if a.layout != b.layout {
		return a.layout < b.layout
	}
	if a.head != b.head {
		return a.head < b.head
	}
	return a.ord < b.ord
}

// partition is one independent unit of search work.
type partition struct {
	layout int
	head   int
}

// bucketCache maps a slot requirement to the candidates that fit it,
// in candidate order (best first). Slots with equal requirements share
// one bucket.
type bucketCache struct {
	cands []Candidate
	cache map[urn.Slot][]int
}

func newBucketCache(cands []Candidate) *bucketCache {
	return &bucketCache{cands: cands, cache: make(map[urn.Slot][]int)}
}

func (c *bucketCache) bucket(s urn.Slot) []int {
	if b, ok := c.cache[s]; ok {
		return b
	}
	b := []int{}
	for i, cand := range c.cands {
		if s.Accepts(cand.Relic.Color) {
			b = append(b, i)
		}
	}
	c.cache[s] = b
	return b
}

// walker holds one worker's scratch state for the slot-by-slot DFS,
// reused across partitions.
type walker struct {
	cands  []Candidate
	used   []bool
	chosen []int
	// lastPos хранит позицию в bucket, выбранную последним слотом с
	// таким же требованием. Следующий такой слот берёт только позиции
	// строго выше, иначе один набор реликвий выпадал бы дважды.
	lastPos map[urn.Slot]int

	layout  int
	head    int
	ord     int
	slots   []urn.Slot
	buckets [][]int
	emit    func(Build) bool
	def     urn.Layout
}

func newWalker(cands []Candidate) *walker {
	return &walker{
		cands:   cands,
		used:    make([]bool, len(cands)),
		lastPos: make(map[urn.Slot]int, 4),
	}
}

// runPartition explores every combination whose first slot takes the
// candidate at bucket position head, emitting finished builds in
// discovery order. Returns false if emit asked to stop.
func (w *walker) runPartition(layoutIdx int, layout urn.Layout, buckets [][]int, head int, emit func(Build) bool) bool {
	w.layout, w.head, w.ord = layoutIdx, head, 0
	w.def, w.slots, w.buckets, w.emit = layout, layout.Slots, buckets, emit
	w.chosen = w.chosen[:0]
	clear(w.lastPos)

	first := w.slots[0]
	ci := buckets[0][head]
	w.used[ci] = true
	w.lastPos[first] = head
	w.chosen = append(w.chosen, ci)
	ok := w.fill(1)
	w.chosen = w.chosen[:0]
	w.used[ci] = false
	delete(w.lastPos, first)
	return ok
}

func (w *walker) fill(slot int) bool {
	if slot == len(w.slots) {
		return w.emitBuild()
	}
	s := w.slots[slot]
	bucket := w.buckets[slot]

	prev, had := w.lastPos[s]
	start := 0
	if had {
		start = prev + 1
	}

	ok := true
	for pos := start; ok && pos < len(bucket); pos++ {
		ci := bucket[pos]
		if w.used[ci] {
			continue
		}
		w.used[ci] = true
		w.lastPos[s] = pos
		w.chosen = append(w.chosen, ci)
		ok = w.fill(slot + 1)
		w.chosen = w.chosen[:len(w.chosen)-1]
		w.used[ci] = false
	}

	if had {
		w.lastPos[s] = prev
	} else {
		delete(w.lastPos, s)
	}
	return ok
}

func (w *walker) emitBuild() bool {
	relics := make([]Candidate, len(w.chosen))
	score := 0
	for i, ci := range w.chosen {
		relics[i] = w.cands[ci]
		score += w.cands[ci].Score
	}
	b := Build{
		Layout: w.def,
		Relics: relics,
		Score:  score,
		order:  buildOrder{layout: w.layout, head: w.head, ord: w.ord},
	}
	w.ord++
	return w.emit(b)
}

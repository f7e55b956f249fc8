package swim

import "container/heap"

type timerKind int

const (
	timerSpawn timerKind = iota
	timerShieldExpiry
)

// timer fires once the engine clock reaches at. gen is the session
// generation it was scheduled under; timers from older sessions are dropped.
type timer struct {
	at   int64
	gen  uint64
	kind timerKind
	seq  uint64 // insertion order, breaks ties between equal deadlines
}

type timerHeap []timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// timerQueue holds pending timers ordered by deadline on the engine clock.
type timerQueue struct {
	h   timerHeap
	seq uint64
}

func (q *timerQueue) schedule(at int64, gen uint64, kind timerKind) {
	q.seq++
	heap.Push(&q.h, timer{at: at, gen: gen, kind: kind, seq: q.seq})
}

// popDue removes and returns the earliest timer due at or before now.
func (q *timerQueue) popDue(now int64) (timer, bool) {
	if len(q.h) == 0 || q.h[0].at > now {
		return timer{}, false
	}
	return heap.Pop(&q.h).(timer), true
}

// pending counts queued timers of a kind for a generation.
func (q *timerQueue) pending(gen uint64, kind timerKind) int {
	n := 0
	for _, t := range q.h {
		if t.gen == gen && t.kind == kind {
			n++
		}
	}
	return n
}

func (q *timerQueue) len() int { return len(q.h) }

func (q *timerQueue) clear() {
	q.h = q.h[:0]
}

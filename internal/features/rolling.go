package features

// windowEntry is one resolved observation's contribution to the rolling sums.
// Weighted values are present only when the opponent's rank was known at
// that observation.
type windowEntry struct {
	points       float64
	goalsFor     float64
	goalsAgainst float64

	wPoints       float64
	wGoalsFor     float64
	wGoalsAgainst float64
	ranked        bool // opponent rank was available
}

// window maintains running sums over the trailing cap observations of one
// team's stream. Push evicts the oldest entry once full and updates the
// sums in place, so walking a stream costs O(1) per observation instead of
// re-summing every window.
//
// Weighted sums cover only the ranked entries inside the window: an
// observation without an opponent rank shrinks the effective weighted
// window but still counts toward the raw means.
type window struct {
	cap  int
	buf  []windowEntry // ring buffer
	head int           // index of the oldest entry
	n    int

	points       float64
	goalsFor     float64
	goalsAgainst float64

	wPoints       float64
	wGoalsFor     float64
	wGoalsAgainst float64
	ranked        int // ranked entries currently in the buffer
}

func newWindow(cap int) *window {
	return &window{cap: cap, buf: make([]windowEntry, cap)}
}

func (w *window) push(e windowEntry) {
	if w.n == w.cap {
		old := w.buf[w.head]
		w.points -= old.points
		w.goalsFor -= old.goalsFor
		w.goalsAgainst -= old.goalsAgainst
		if old.ranked {
			w.wPoints -= old.wPoints
			w.wGoalsFor -= old.wGoalsFor
			w.wGoalsAgainst -= old.wGoalsAgainst
			w.ranked--
		}
		w.buf[w.head] = e
		w.head = (w.head + 1) % w.cap
	} else {
		w.buf[(w.head+w.n)%w.cap] = e
		w.n++
	}

	w.points += e.points
	w.goalsFor += e.goalsFor
	w.goalsAgainst += e.goalsAgainst
	if e.ranked {
		w.wPoints += e.wPoints
		w.wGoalsFor += e.wGoalsFor
		w.wGoalsAgainst += e.wGoalsAgainst
		w.ranked++
	}
}

// Raw means are NULL only while the window is empty.

func (w *window) meanPoints() *float64 {
	if w.n == 0 {
		return nil
	}
	v := w.points / float64(w.n)
	return &v
}

func (w *window) meanGoalsFor() *float64 {
	if w.n == 0 {
		return nil
	}
	v := w.goalsFor / float64(w.n)
	return &v
}

func (w *window) meanGoalsAgainst() *float64 {
	if w.n == 0 {
		return nil
	}
	v := w.goalsAgainst / float64(w.n)
	return &v
}

// Weighted means are NULL while no windowed observation carries a rank.

func (w *window) meanWeightedPoints() *float64 {
	if w.ranked == 0 {
		return nil
	}
	v := w.wPoints / float64(w.ranked)
	return &v
}

func (w *window) meanWeightedGoalsFor() *float64 {
	if w.ranked == 0 {
		return nil
	}
	v := w.wGoalsFor / float64(w.ranked)
	return &v
}

func (w *window) meanWeightedGoalsAgainst() *float64 {
	if w.ranked == 0 {
		return nil
	}
	v := w.wGoalsAgainst / float64(w.ranked)
	return &v
}

package classify

// None is the observation label for "no confident gesture this frame".
const None = "None"

// WindowSize is the voting window capacity. At typical frame rates the
// window spans a few hundred milliseconds, which bounds how long a new
// gesture takes to win the vote.
const WindowSize = 8

// Observation is one processed frame's classified gesture.
type Observation struct {
	Label string
	Score float64
}

// VoteResult is the most frequent label in the current window and how
// many of the window's slots it holds.
type VoteResult struct {
	Winner string
	Count  int
}

// Window is a fixed-capacity ring of recent observations. Pushing past
// capacity evicts the oldest entry. The zero value is ready to use.
//
// Window is owned by the engine's frame loop and must not be shared
// across goroutines.
type Window struct {
	slots [WindowSize]Observation
	head  int // index of the oldest observation
	count int
}

// Push appends an observation, evicting the oldest when full, and
// returns the majority vote over the updated window.
func (w *Window) Push(o Observation) VoteResult {
	if w.count < WindowSize {
		w.slots[(w.head+w.count)%WindowSize] = o
		w.count++
	} else {
		w.slots[w.head] = o
		w.head = (w.head + 1) % WindowSize
	}
	return w.Vote()
}

// Vote tallies label frequencies across the window, oldest to newest.
//
// Ties are broken by the first-encountered label in that scan. This is
// deliberate and pinned by tests: it decides which of two equally voted
// labels a mixed window surfaces, and therefore how the segmenter
// behaves near a gesture transition. An alternative worth revisiting is
// preferring the previously confirmed label on ties; with the current
// confirmation threshold (5 of 8) a tied label can never confirm, so
// the difference is cosmetic for now.
func (w *Window) Vote() VoteResult {
	if w.count == 0 {
		return VoteResult{Winner: None}
	}

	var labels [WindowSize]string
	var counts [WindowSize]int
	n := 0

	for i := 0; i < w.count; i++ {
		label := w.slots[(w.head+i)%WindowSize].Label
		found := false
		for j := 0; j < n; j++ {
			if labels[j] == label {
				counts[j]++
				found = true
				break
			}
		}
		if !found {
			labels[n] = label
			counts[n] = 1
			n++
		}
	}

	best := 0
	for j := 1; j < n; j++ {
		if counts[j] > counts[best] {
			best = j
		}
	}

	return VoteResult{Winner: labels[best], Count: counts[best]}
}

// Len returns the number of observations currently held.
func (w *Window) Len() int {
	return w.count
}

// Reset discards all observations.
func (w *Window) Reset() {
	w.head = 0
	w.count = 0
}

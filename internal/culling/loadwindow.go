package culling

// RollingWindow tracks per-tick cull durations (microseconds) over a fixed
// window and decides, at each window boundary, whether the pipeline should
// widen its reveal timer to ease load — the adaptive backpressure named in
// spec.md §4.3: "if the previous window's maximum cull time exceeded a load
// threshold, use MaxTimerIncrement; else MinTimerIncrement."
type RollingWindow struct {
	samples   []int64
	length    int
	pos       int
	filled    bool
	threshold int64
	minInc    int
	maxInc    int
	current   int
}

// NewRollingWindow constructs a window of the given length, starting with
// MinTimerIncrement in effect.
func NewRollingWindow(length int, threshold int64, minInc, maxInc int) *RollingWindow {
	if length <= 0 {
		length = 1
	}
	return &RollingWindow{
		samples:   make([]int64, length),
		length:    length,
		threshold: threshold,
		minInc:    minInc,
		maxInc:    maxInc,
		current:   minInc,
	}
}

// Record adds one tick's cull duration (microseconds) to the window. When
// the window fills, it evaluates the max sample against the load threshold
// and updates the current timer increment, returning true if the increment
// changed.
func (w *RollingWindow) Record(microseconds int64) (changed bool) {
	w.samples[w.pos] = microseconds
	w.pos++
	if w.pos >= w.length {
		w.pos = 0
		w.filled = true
	}
	if w.pos != 0 {
		return false
	}
	return w.evaluate()
}

func (w *RollingWindow) evaluate() bool {
	var max int64
	for _, s := range w.samples {
		if s > max {
			max = s
		}
	}
	next := w.minInc
	if max > w.threshold {
		next = w.maxInc
	}
	if next != w.current {
		w.current = next
		return true
	}
	return false
}

// TimerIncrement returns the currently selected TimerIncrement.
func (w *RollingWindow) TimerIncrement() int {
	return w.current
}

// WindowMax returns the maximum sample currently held; slots not yet
// recorded count as 0.
func (w *RollingWindow) WindowMax() int64 {
	var max int64
	for _, s := range w.samples {
		if s > max {
			max = s
		}
	}
	return max
}

package timer

// Kind selects a frame counter's value-vs-time formula (§3.8).
type Kind uint8

const (
	KindSimple Kind = iota // quadratic ease-in to max, then stop
	KindLoop               // linear, wraps
	KindTurn               // linear, reflects
	KindAccelerating       // quadratic ease-in (Simple's curve; also stops at max)
	KindDecelerating       // inverse-quadratic ease-out
)

// FrameCounter produces an integer in [Min,Max] as a function of elapsed
// wall-clock time since it started (§3.8).
type FrameCounter struct {
	Min, Max   int
	DurationMs int64
	originMs   int64
	kind       Kind
	active     bool
}

// NewFrameCounter starts a counter of the given kind, active immediately.
func NewFrameCounter(nowMs int64, min, max int, durationMs int64, kind Kind) *FrameCounter {
	return &FrameCounter{Min: min, Max: max, DurationMs: durationMs, originMs: nowMs, kind: kind, active: true}
}

// IsActive reports whether the counter still produces changing values.
// Terminating kinds (Simple, Accelerating, Decelerating) clear this once
// Read has advanced them past their duration.
func (f *FrameCounter) IsActive() bool { return f.active }

// Read computes the current value at nowMs, transitioning terminating
// counters to inactive once they reach Max.
func (f *FrameCounter) Read(nowMs int64) int {
	if !f.active {
		return f.Max
	}
	elapsed := nowMs - f.originMs
	if elapsed < 0 {
		elapsed = 0
	}
	span := f.Max - f.Min

	switch f.kind {
	case KindLoop:
		if f.DurationMs <= 0 {
			return f.Min
		}
		pos := elapsed % f.DurationMs
		frac := float64(pos) / float64(f.DurationMs)
		return f.Min + int(frac*float64(span))

	case KindTurn:
		if f.DurationMs <= 0 {
			return f.Min
		}
		period := f.DurationMs * 2
		pos := elapsed % period
		if pos > f.DurationMs {
			pos = period - pos
		}
		frac := float64(pos) / float64(f.DurationMs)
		return f.Min + int(frac*float64(span))

	case KindDecelerating:
		if elapsed >= f.DurationMs {
			f.active = false
			return f.Max
		}
		frac := float64(elapsed) / float64(f.DurationMs)
		// inverse-quadratic ease-out: fast start, slow finish
		eased := 1 - (1-frac)*(1-frac)
		return f.Min + int(eased*float64(span))

	default: // KindSimple, KindAccelerating: quadratic ease-in
		if elapsed >= f.DurationMs {
			f.active = false
			return f.Max
		}
		frac := float64(elapsed) / float64(f.DurationMs)
		eased := frac * frac
		return f.Min + int(eased*float64(span))
	}
}

// Layer selects counter slot [0,1] in the two-layer indexed table (§3.8).
type Layer uint8

const (
	Layer0 Layer = 0
	Layer1 Layer = 1
)

// Table is the two-layer, 255-slot frame counter table.
type Table struct {
	slots [2][255]*FrameCounter
}

func NewTable() *Table { return &Table{} }

func (t *Table) Set(layer Layer, index int, fc *FrameCounter) {
	t.slots[layer][index] = fc
}

func (t *Table) Get(layer Layer, index int) *FrameCounter {
	return t.slots[layer][index]
}

// AnyActive reports whether any stored counter is still active — the event
// subsystem uses this to decide whether a "real-time task" is pending (§4.7,
// §5 sleep policy).
func (t *Table) AnyActive() bool {
	for layer := 0; layer < 2; layer++ {
		for _, fc := range t.slots[layer] {
			if fc != nil && fc.IsActive() {
				return true
			}
		}
	}
	return false
}

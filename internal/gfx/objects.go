package gfx

// ObjectSlot indexes the sparse graphics-object array (§3.5: "indexed
// sparse array", generalized from the teacher's fixed 128-sprite OAM to
// an open slot count since a visual novel's objects are script-addressed
// by number, not hardware-limited).
type ObjectSlot int

// Object is one graphics-object layer entry: a reference into a source
// surface region, a screen position, and the filters/blend/clip state
// applied when the compositor draws it.
type Object struct {
	Visible bool
	Source  *Surface
	Region  Rect
	X, Y    int
	Opts    BlitOpts
	Clip    *Rect // nil means unclipped
}

// Layer is the sparse object array for one layer (front or back, §3.5).
type Layer struct {
	slots map[ObjectSlot]*Object
}

func NewLayer() *Layer { return &Layer{slots: make(map[ObjectSlot]*Object)} }

// Set installs or replaces the object at slot.
func (l *Layer) Set(slot ObjectSlot, obj *Object) { l.slots[slot] = obj }

// Clear removes the object at slot, if any.
func (l *Layer) Clear(slot ObjectSlot) { delete(l.slots, slot) }

// ClearAll removes every object.
func (l *Layer) ClearAll() { l.slots = make(map[ObjectSlot]*Object) }

// Get returns the object at slot, or nil if empty.
func (l *Layer) Get(slot ObjectSlot) *Object { return l.slots[slot] }

// Slots returns the occupied slot numbers in ascending order — the
// compositor draws them in this order, low to high (§3.5 draw order).
func (l *Layer) Slots() []ObjectSlot {
	out := make([]ObjectSlot, 0, len(l.slots))
	for s := range l.slots {
		out = append(out, s)
	}
	// insertion order doesn't matter for a map; sort for determinism.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

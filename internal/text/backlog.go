package text

// Backlog is the navigable history of frozen page sets (§4.5.5).
type Backlog struct {
	history []PageSet
	cursor  int // index into history; == len(history) means "live" (not reading backlog)
}

func NewBacklog() *Backlog { return &Backlog{} }

// Snapshot clones the given live page set and pushes it onto history,
// resetting the cursor to live (§4.5.5 snapshot()).
func (b *Backlog) Snapshot(live PageSet) {
	b.history = append(b.history, live.Clone())
	b.cursor = len(b.history)
}

// IsReadingBacklog reports whether the cursor currently points into
// history rather than at the live page set.
func (b *Backlog) IsReadingBacklog() bool { return b.cursor < len(b.history) }

// BackPage moves the cursor one step earlier in history, clamped at
// the oldest snapshot.
func (b *Backlog) BackPage() {
	if len(b.history) == 0 {
		return
	}
	if b.cursor == len(b.history) {
		b.cursor = len(b.history) - 1
		return
	}
	if b.cursor > 0 {
		b.cursor--
	}
}

// ForwardPage moves the cursor one step later in history; moving past
// the newest snapshot returns to live (clears IsReadingBacklog).
func (b *Backlog) ForwardPage() {
	if b.cursor < len(b.history) {
		b.cursor++
	}
}

// Current returns the page set the renderer should currently use: a
// historical snapshot while reading backlog, or nil when live (the
// caller should render its own live page set in that case).
func (b *Backlog) Current() PageSet {
	if !b.IsReadingBacklog() {
		return nil
	}
	return b.history[b.cursor]
}

// ReturnToLive clears the backlog cursor back to the live page set.
func (b *Backlog) ReturnToLive() { b.cursor = len(b.history) }

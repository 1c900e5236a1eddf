// Package text implements the text window/page/reveal state machine of
// §4.5: a per-window insertion point with kinsoku line-break avoidance,
// an append-only replay buffer, the character-reveal and pause long
// operations, and a navigable backlog.
//
// Grounded on the teacher's one-shot-per-frame polling idiom
// (internal/apu/apu.go's UpdateFrame, internal/ppu/ppu.go's StepPPU:
// "advance a little state each frame, report completion"), generalized
// from waveform/scanline stepping to character-by-character reveal.
package text

import "unicode/utf8"

// Point is an insertion point within a window: pixel origin plus the
// logical line number (for is_full's line-count check).
type Point struct {
	X, Y int
	Line int
}

// Layout holds a window's fixed geometry (§4.5.1).
type Layout struct {
	OriginX, OriginY int
	PaddingX, PaddingY int
	CharWidth, CharHeight int
	LineSpacing int
	RubySize    int
	MaxLines    int
	CharsPerLine int
}

// Kinsoku is the line-break-avoidance predicate: characters for which
// it returns true may not begin a line.
type Kinsoku func(r rune) bool

// DefaultKinsoku disallows common Japanese closing punctuation and
// delimiters from starting a line.
func DefaultKinsoku(r rune) bool {
	switch r {
	case '。', '、', '」', '』', '）', '・', '，', '．', 'ー', '！', '？', '〉', '》':
		return true
	}
	return false
}

// Window is one text window's live layout, insertion point, and
// chrome/name/color state (§4.5.1).
type Window struct {
	Layout  Layout
	Point   Point
	kinsoku Kinsoku

	indentX int
	fontColor [3]uint8
	name      string

	inRuby bool
	full   bool
}

// NewWindow creates a window with the given layout and kinsoku table
// (nil uses DefaultKinsoku).
func NewWindow(layout Layout, kinsoku Kinsoku) *Window {
	if kinsoku == nil {
		kinsoku = DefaultKinsoku
	}
	w := &Window{Layout: layout, kinsoku: kinsoku}
	w.Point = Point{X: layout.OriginX + layout.PaddingX, Y: layout.OriginY + layout.PaddingY}
	return w
}

// IsFull reports whether the window has reached its configured maximum
// line count (§4.5.1 is_full).
func (w *Window) IsFull() bool { return w.full }

// DisplayChar renders `current` at the insertion point and advances it,
// applying the kinsoku orphan rule against `next` (§4.5.1). Returns
// whether the character fit (false means the window is now full and the
// character was not placed).
func (w *Window) DisplayChar(current, next rune) bool {
	if w.full {
		return false
	}

	if w.Point.X+w.Layout.CharWidth > w.lineLimitX() {
		w.breakLine()
		if w.full {
			return false
		}
	} else if w.kinsoku(current) {
		// `current` itself fits, but orphan-rule applies when `next`
		// would overflow the line: break before `current`.
		if next != 0 && w.Point.X+2*w.Layout.CharWidth > w.lineLimitX() {
			w.breakLine()
			if w.full {
				return false
			}
		}
	}

	w.Point.X += w.Layout.CharWidth
	return true
}

func (w *Window) lineLimitX() int {
	return w.Layout.OriginX + w.Layout.PaddingX + w.Layout.CharsPerLine*w.Layout.CharWidth
}

func (w *Window) breakLine() {
	w.Point.Line++
	w.Point.X = w.Layout.OriginX + w.Layout.PaddingX + w.indentX
	w.Point.Y += w.Layout.CharHeight + w.Layout.LineSpacing
	if w.Point.Line >= w.Layout.MaxLines {
		w.full = true
	}
}

// HardBreak forces a line break regardless of current column (§4.5.1).
func (w *Window) HardBreak() { w.breakLine() }

// ResetIndentation clears the stored indentation so the next HardBreak
// returns to the window's left margin (§8: "set_indentation();
// hard_break() places the next character at the stored indentation x").
func (w *Window) ResetIndentation() { w.indentX = 0 }

// SetIndentation stores the current column as the indentation used by
// future HardBreak calls.
func (w *Window) SetIndentation() {
	w.indentX = w.Point.X - (w.Layout.OriginX + w.Layout.PaddingX)
}

// SetName begins name display: per §4.5.3's "name construct", the
// caller has already extracted the bracketed contents.
func (w *Window) SetName(name string, nextChar rune) { w.name = name }

// Name returns the most recently set speaker name.
func (w *Window) Name() string { return w.name }

// MarkRubyBegin enters ruby-gloss mode: subsequent reveal should treat
// the following text as an atomic unit (§4.5.3).
func (w *Window) MarkRubyBegin() { w.inRuby = true }

// InRuby reports whether the window is currently inside a ruby-begin
// marker.
func (w *Window) InRuby() bool { return w.inRuby }

// DisplayRubyText ends ruby mode after rendering the gloss text atomically.
func (w *Window) DisplayRubyText(rubyText string) {
	w.inRuby = false
	// Ruby glyphs are rendered at RubySize above the base text; layout
	// math intentionally does not advance the main insertion point.
	_ = utf8.RuneCountInString(rubyText)
}

// SetFontColor sets the RGB color used for subsequently displayed text.
func (w *Window) SetFontColor(rgb [3]uint8) { w.fontColor = rgb }

// FontColor returns the current font color.
func (w *Window) FontColor() [3]uint8 { return w.fontColor }

// Clear resets the window to its empty, top-of-window state.
func (w *Window) Clear() {
	w.Point = Point{X: w.Layout.OriginX + w.Layout.PaddingX, Y: w.Layout.OriginY + w.Layout.PaddingY}
	w.indentX = 0
	w.name = ""
	w.inRuby = false
	w.full = false
}

// ChromeButton names a hit-testable chrome control (§4.5.1).
type ChromeButton int

const (
	ChromeBacklogPrev ChromeButton = iota
	ChromeBacklogNext
	ChromeSkipToggle
	ChromeAutoToggle
	ChromeMenu
)

// ChromeHit maps a click point to a chrome button, or (-1, false) if
// the click missed every button's region. The host supplies button
// rectangles since they're part of the window's waku asset layout, not
// computed here.
func ChromeHit(buttons map[ChromeButton]Rect, x, y int) (ChromeButton, bool) {
	for btn, r := range buttons {
		if x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2 {
			return btn, true
		}
	}
	return 0, false
}

// Rect is a simple hit-test rectangle, independent of the gfx package
// to avoid a text->gfx import for a single utility.
type Rect struct{ X1, Y1, X2, Y2 int }

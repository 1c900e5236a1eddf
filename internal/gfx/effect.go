// Effects implement §4.4's transition-effect framework: each effect is a
// pure function from elapsed time to a rendered frame, which is what
// makes them independently testable (§8, determinism property) without
// driving a full long-operation stack per test case.
//
// Grounded on the teacher's determinism requirement in
// internal/emulator/determinism_test.go ("same inputs, same outputs")
// translated from whole-frame emulator determinism into a per-effect
// "Render(t) is a pure function" contract.
package gfx

import "math"

// Effect renders a transition between two surfaces at progress t in
// [0,1]. Implementations must be pure functions of (from, to, t): the
// same arguments always produce the same output (§8 determinism).
type Effect interface {
	// Render draws the effect's moving/foreground content for progress
	// t into dst, which must already be sized to match from/to. It does
	// not paint the background — EffectLongOperation does that first
	// when BlitOriginalImage reports true.
	Render(dst *Surface, from, to *Surface, t float64)

	// DurationMs reports the effect's configured total duration.
	DurationMs() int64

	// BlitOriginalImage reports whether the host must render `from` at
	// full opacity across the full surface before calling Render, i.e.
	// whether Render only ever draws a partial region of the frame.
	BlitOriginalImage() bool
}

func clampT(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// WipeDirection selects which edge the wipe advances from.
type WipeDirection uint8

const (
	WipeLeftToRight WipeDirection = iota
	WipeRightToLeft
	WipeTopToBottom
	WipeBottomToTop
)

// Wipe reveals `to` behind an advancing boundary, in the direction
// given, over DurationMs (§4.4 "Wipe" family). Interpolation > 0 adds a
// soft-edged gradient strip ahead of the solid boundary, roughly
// 2.5*2^Interpolation pixels wide.
type Wipe struct {
	Duration      int64
	Direction     WipeDirection
	Interpolation int
}

func (w Wipe) DurationMs() int64        { return w.Duration }
func (w Wipe) BlitOriginalImage() bool  { return true }

func (w Wipe) interpolationPixels() int {
	if w.Interpolation <= 0 {
		return 0
	}
	return int(math.Round(math.Pow(2, float64(w.Interpolation)) * 2.5))
}

// wipeGeometry splits the swept distance at elapsed fraction p into a
// solid "main" region and a soft-edged "gradient" region up to interp
// pixels wide, per §4.4's three-stage calculation: the gradient alone
// grows from the leading edge, then the main region grows behind a
// full-width gradient, then the gradient shrinks as the main region
// fills the remaining screen.
func wipeGeometry(p float64, axisLen, interp int) (mainSize, gradSize int) {
	swept := p * float64(axisLen+interp)
	switch {
	case swept < float64(interp):
		return 0, int(swept)
	case swept < float64(axisLen):
		return int(swept) - interp, interp
	default:
		mainSize = int(swept) - interp
		if mainSize > axisLen {
			mainSize = axisLen
		}
		return mainSize, axisLen - mainSize
	}
}

func (w Wipe) Render(dst *Surface, from, to *Surface, t float64) {
	t = clampT(t)
	width, height := dst.Width(), dst.Height()
	interp := w.interpolationPixels()

	switch w.Direction {
	case WipeTopToBottom:
		main, grad := wipeGeometry(t, height, interp)
		if main > 0 {
			r := Rect{X2: width, Y2: main}
			CopySurface(dst, r.X1, r.Y1, to, r, BlitOpts{Alpha: 255})
		}
		if grad > 0 {
			r := Rect{X1: 0, Y1: main, X2: width, Y2: main + grad}
			blitGradientAxis(dst, r, to, true, 255, 0)
		}
	case WipeBottomToTop:
		main, grad := wipeGeometry(t, height, interp)
		if main > 0 {
			r := Rect{X1: 0, Y1: height - main, X2: width, Y2: height}
			CopySurface(dst, r.X1, r.Y1, to, r, BlitOpts{Alpha: 255})
		}
		if grad > 0 {
			r := Rect{X1: 0, Y1: height - main - grad, X2: width, Y2: height - main}
			blitGradientAxis(dst, r, to, true, 0, 255)
		}
	case WipeLeftToRight:
		main, grad := wipeGeometry(t, width, interp)
		if main > 0 {
			r := Rect{X1: 0, Y1: 0, X2: main, Y2: height}
			CopySurface(dst, r.X1, r.Y1, to, r, BlitOpts{Alpha: 255})
		}
		if grad > 0 {
			r := Rect{X1: main, Y1: 0, X2: main + grad, Y2: height}
			blitGradientAxis(dst, r, to, false, 255, 0)
		}
	case WipeRightToLeft:
		main, grad := wipeGeometry(t, width, interp)
		if main > 0 {
			r := Rect{X1: width - main, Y1: 0, X2: width, Y2: height}
			CopySurface(dst, r.X1, r.Y1, to, r, BlitOpts{Alpha: 255})
		}
		if grad > 0 {
			r := Rect{X1: width - main - grad, Y1: 0, X2: width - main, Y2: height}
			blitGradientAxis(dst, r, to, false, 0, 255)
		}
	}
}

// blitGradientAxis copies src's r-shaped region onto dst at the same
// coordinates, scaling each column's (or row's) alpha linearly along
// the sweep axis from startAlpha at one edge to endAlpha at the other
// (§4.4 Wipe interpolation: a soft-edge strip with per-vertex opacity
// {255,255,0,0} or a reflection of it).
func blitGradientAxis(dst *Surface, r Rect, src *Surface, vertical bool, startAlpha, endAlpha uint8) {
	dstBounds := dst.Img.Bounds()
	srcBounds := src.Img.Bounds()
	steps := r.Width()
	if vertical {
		steps = r.Height()
	}
	if steps <= 0 {
		return
	}
	for i := 0; i < steps; i++ {
		frac := 0.0
		if steps > 1 {
			frac = float64(i) / float64(steps-1)
		}
		a := uint8(float64(startAlpha) + frac*(float64(endAlpha)-float64(startAlpha)))
		if a == 0 {
			continue
		}
		if vertical {
			y := r.Y1 + i
			if y < dstBounds.Min.Y || y >= dstBounds.Max.Y || y < srcBounds.Min.Y || y >= srcBounds.Max.Y {
				continue
			}
			for x := r.X1; x < r.X2; x++ {
				if x < dstBounds.Min.X || x >= dstBounds.Max.X || x < srcBounds.Min.X || x >= srcBounds.Max.X {
					continue
				}
				blendGradientPixel(dst, x, y, src, x, y, a)
			}
		} else {
			x := r.X1 + i
			if x < dstBounds.Min.X || x >= dstBounds.Max.X || x < srcBounds.Min.X || x >= srcBounds.Max.X {
				continue
			}
			for y := r.Y1; y < r.Y2; y++ {
				if y < dstBounds.Min.Y || y >= dstBounds.Max.Y || y < srcBounds.Min.Y || y >= srcBounds.Max.Y {
					continue
				}
				blendGradientPixel(dst, x, y, src, x, y, a)
			}
		}
	}
}

func blendGradientPixel(dst *Surface, dx, dy int, src *Surface, sx, sy int, alpha uint8) {
	px := src.Img.RGBAAt(sx, sy)
	px.A = uint8(uint32(px.A) * uint32(alpha) / 255)
	if px.A == 0 {
		return
	}
	if px.A == 255 {
		dst.Img.SetRGBA(dx, dy, px)
		return
	}
	dst.Img.SetRGBA(dx, dy, alphaBlend(dst.Img.RGBAAt(dx, dy), px))
}

// ScrollDirection selects which way the outgoing surface travels.
type ScrollDirection uint8

const (
	ScrollLeft ScrollDirection = iota
	ScrollRight
	ScrollUp
	ScrollDown
)

// ScrollComposition picks which pair of the drawer's four primitive
// blits (scroll_on/scroll_off/squash_on/squash_off) a
// ScrollSquashSlide composes, per §4.4's "4 directions x 6 composition
// modes", grounded on ScrollOnScrollOff.cpp's ScrollSquashSlideEffectTypeBase
// subclasses.
type ScrollComposition uint8

const (
	ScrollOnScrollOff ScrollComposition = iota
	ScrollOnSquashOff
	SquashOnScrollOff
	SquashOnSquashOff
	SlideOn
	SlideOff
)

// scrollDrawer supplies the four primitive blits for one travel axis:
// scrollOn/scrollOff translate a same-size crop of `to`/`from`,
// squashOn/squashOff scale the full `to`/`from` surface into a growing
// or shrinking strip. amountVisible is the number of pixels of travel
// along the axis so far.
type scrollDrawer interface {
	axisSize(width, height int) int
	scrollOn(dst, to *Surface, amountVisible, width, height int)
	scrollOff(dst, from *Surface, amountVisible, width, height int)
	squashOn(dst, to *Surface, amountVisible, width, height int)
	squashOff(dst, from *Surface, amountVisible, width, height int)
}

type topToBottomDrawer struct{}

func (topToBottomDrawer) axisSize(_, height int) int { return height }

func (topToBottomDrawer) scrollOn(dst, to *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: height - v, X2: width, Y2: height}
	CopySurface(dst, 0, 0, to, r, BlitOpts{Alpha: 255})
}

func (topToBottomDrawer) scrollOff(dst, from *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: 0, X2: width, Y2: height - v}
	CopySurface(dst, 0, v, from, r, BlitOpts{Alpha: 255})
}

func (topToBottomDrawer) squashOn(dst, to *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X2: width, Y2: v}, to, full, BlitOpts{Alpha: 255})
}

func (topToBottomDrawer) squashOff(dst, from *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X1: 0, Y1: v, X2: width, Y2: height}, from, full, BlitOpts{Alpha: 255})
}

type bottomToTopDrawer struct{}

func (bottomToTopDrawer) axisSize(_, height int) int { return height }

func (bottomToTopDrawer) scrollOn(dst, to *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: 0, X2: width, Y2: v}
	CopySurface(dst, 0, height-v, to, r, BlitOpts{Alpha: 255})
}

func (bottomToTopDrawer) scrollOff(dst, from *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: v, X2: width, Y2: height}
	CopySurface(dst, 0, 0, from, r, BlitOpts{Alpha: 255})
}

func (bottomToTopDrawer) squashOn(dst, to *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X1: 0, Y1: height - v, X2: width, Y2: height}, to, full, BlitOpts{Alpha: 255})
}

func (bottomToTopDrawer) squashOff(dst, from *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X2: width, Y2: height - v}, from, full, BlitOpts{Alpha: 255})
}

type leftToRightDrawer struct{}

func (leftToRightDrawer) axisSize(width, _ int) int { return width }

func (leftToRightDrawer) scrollOn(dst, to *Surface, v, width, height int) {
	r := Rect{X1: width - v, Y1: 0, X2: width, Y2: height}
	CopySurface(dst, 0, 0, to, r, BlitOpts{Alpha: 255})
}

func (leftToRightDrawer) scrollOff(dst, from *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: 0, X2: width - v, Y2: height}
	CopySurface(dst, v, 0, from, r, BlitOpts{Alpha: 255})
}

func (leftToRightDrawer) squashOn(dst, to *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X2: v, Y2: height}, to, full, BlitOpts{Alpha: 255})
}

func (leftToRightDrawer) squashOff(dst, from *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X1: v, Y1: 0, X2: width, Y2: height}, from, full, BlitOpts{Alpha: 255})
}

type rightToLeftDrawer struct{}

func (rightToLeftDrawer) axisSize(width, _ int) int { return width }

func (rightToLeftDrawer) scrollOff(dst, from *Surface, v, width, height int) {
	r := Rect{X1: v, Y1: 0, X2: width, Y2: height}
	CopySurface(dst, 0, 0, from, r, BlitOpts{Alpha: 255})
}

func (rightToLeftDrawer) scrollOn(dst, to *Surface, v, width, height int) {
	r := Rect{X1: 0, Y1: 0, X2: v, Y2: height}
	CopySurface(dst, width-v, 0, to, r, BlitOpts{Alpha: 255})
}

func (rightToLeftDrawer) squashOff(dst, from *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X2: width - v, Y2: height}, from, full, BlitOpts{Alpha: 255})
}

func (rightToLeftDrawer) squashOn(dst, to *Surface, v, width, height int) {
	full := Rect{X2: width, Y2: height}
	CopySurfaceScaled(dst, Rect{X1: width - v, Y1: 0, X2: width, Y2: height}, to, full, BlitOpts{Alpha: 255})
}

func scrollDrawerFor(dir ScrollDirection) scrollDrawer {
	switch dir {
	case ScrollRight:
		return leftToRightDrawer{}
	case ScrollUp:
		return bottomToTopDrawer{}
	case ScrollDown:
		return topToBottomDrawer{}
	default: // ScrollLeft
		return rightToLeftDrawer{}
	}
}

// ScrollSquashSlide slides or squashes `from` off-screen while `to`
// enters, per one of six composition modes (§4.4 "scroll/squash/slide"
// family), grounded on ScrollOnScrollOff.cpp.
type ScrollSquashSlide struct {
	Duration    int64
	Direction   ScrollDirection
	Composition ScrollComposition
}

func (s ScrollSquashSlide) DurationMs() int64       { return s.Duration }
func (s ScrollSquashSlide) BlitOriginalImage() bool { return false }

func (s ScrollSquashSlide) Render(dst *Surface, from, to *Surface, t float64) {
	t = clampT(t)
	width, height := dst.Width(), dst.Height()
	full := Rect{X2: width, Y2: height}
	drawer := scrollDrawerFor(s.Direction)
	v := int(t * float64(drawer.axisSize(width, height)))

	switch s.Composition {
	case ScrollOnScrollOff:
		drawer.scrollOn(dst, to, v, width, height)
		drawer.scrollOff(dst, from, v, width, height)
	case ScrollOnSquashOff:
		drawer.scrollOn(dst, to, v, width, height)
		drawer.squashOff(dst, from, v, width, height)
	case SquashOnScrollOff:
		drawer.squashOn(dst, to, v, width, height)
		drawer.scrollOff(dst, from, v, width, height)
	case SquashOnSquashOff:
		drawer.squashOn(dst, to, v, width, height)
		drawer.squashOff(dst, from, v, width, height)
	case SlideOn:
		CopySurface(dst, 0, 0, from, full, BlitOpts{Alpha: 255})
		drawer.scrollOn(dst, to, v, width, height)
	case SlideOff:
		CopySurface(dst, 0, 0, to, full, BlitOpts{Alpha: 255})
		drawer.scrollOff(dst, from, v, width, height)
	}
}

// Zoom linearly interpolates a sampling rectangle over `to` from
// FromRect to ToRect over the duration, drawing the sampled region into
// DestRect on top of `from` (§4.4 "Zoom" family), grounded on
// ZoomLongOperation.cpp.
type Zoom struct {
	Duration int64
	FromRect Rect
	ToRect   Rect
	DestRect Rect
}

func (z Zoom) DurationMs() int64       { return z.Duration }
func (z Zoom) BlitOriginalImage() bool { return true }

func lerpInt(a, b int, t float64) int {
	return a + int(t*float64(b-a))
}

func (z Zoom) Render(dst *Surface, from, to *Surface, t float64) {
	t = clampT(t)
	x := lerpInt(z.FromRect.X1, z.ToRect.X1, t)
	y := lerpInt(z.FromRect.Y1, z.ToRect.Y1, t)
	w := lerpInt(z.FromRect.Width(), z.ToRect.Width(), t)
	h := lerpInt(z.FromRect.Height(), z.ToRect.Height(), t)
	src := Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
	CopySurfaceScaled(dst, z.DestRect, to, src, BlitOpts{Alpha: 255})
}

// Package gfx implements the graphics surfaces, object layer, and
// compositor of §3.5/§4.F: DC0/DC1 and numbered surfaces hold pixel
// data plus a named-region table, graphics objects reference a surface
// region with filters/alpha/clip/blend, and the Compositor renders them
// in a fixed layer order into the frame buffer the host presents.
//
// Grounded on the teacher's layered PPU rendering (internal/ppu/ppu.go:
// BG0..BG3 + OAM composited back-to-front into a framebuffer) generalized
// from tile/palette VRAM to direct image.RGBA surfaces — the teacher's
// register-mapped VRAM model has no analog in a pixel/region compositor,
// so this package trades its byte-register read/write interface for a
// direct-pixel one while keeping its layering/compositing order.
package gfx

import (
	"fmt"
	"image"
	"image/color"
)

// Rect is an axis-aligned pixel rectangle (x1,y1)-(x2,y2), exclusive of
// the far edge, matching image.Rectangle semantics.
type Rect struct {
	X1, Y1, X2, Y2 int
}

func (r Rect) toImage() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r Rect) Width() int  { return r.X2 - r.X1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Surface is a pixel buffer with a named-region table (§3.5): the named
// regions are the "named coordinates" a scenario can reference instead
// of raw pixel offsets (character stand positions, window chrome, etc.).
type Surface struct {
	Img     *image.RGBA
	regions map[string]Rect
}

// NewSurface allocates a zero-filled (fully transparent) surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		regions: make(map[string]Rect),
	}
}

func (s *Surface) Width() int  { return s.Img.Bounds().Dx() }
func (s *Surface) Height() int { return s.Img.Bounds().Dy() }

// SetRegion names a rectangle within the surface.
func (s *Surface) SetRegion(name string, r Rect) { s.regions[name] = r }

// Region looks up a named rectangle.
func (s *Surface) Region(name string) (Rect, bool) {
	r, ok := s.regions[name]
	return r, ok
}

// Clear fills the entire surface with a single color (typically
// transparent black or opaque black for DC0).
func (s *Surface) Clear(c color.RGBA) {
	b := s.Img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s.Img.SetRGBA(x, y, c)
		}
	}
}

// Fill sets every pixel within r to c, clamped to the surface bounds.
func (s *Surface) Fill(r Rect, c color.RGBA) error {
	clamped := r.toImage().Intersect(s.Img.Bounds())
	if clamped.Empty() {
		return nil
	}
	for y := clamped.Min.Y; y < clamped.Max.Y; y++ {
		for x := clamped.Min.X; x < clamped.Max.X; x++ {
			s.Img.SetRGBA(x, y, c)
		}
	}
	return nil
}

// BlitOpts configures a CopySurface operation (§4.F filters/alpha/blend).
type BlitOpts struct {
	Alpha     uint8 // 0..255, multiplies the source's existing alpha
	Grayscale bool
	Invert    bool
}

// CopySurface composites src's region srcRect onto dst at (dstX, dstY),
// applying the requested alpha/filters. Out-of-bounds regions clip
// silently (§3.5 edge case: off-surface blits never panic).
func CopySurface(dst *Surface, dstX, dstY int, src *Surface, srcRect Rect, opts BlitOpts) error {
	if src == nil || dst == nil {
		return fmt.Errorf("gfx: nil surface in CopySurface")
	}
	sr := srcRect.toImage().Intersect(src.Img.Bounds())
	if sr.Empty() {
		return nil
	}
	dstBounds := dst.Img.Bounds()
	for sy := sr.Min.Y; sy < sr.Max.Y; sy++ {
		dy := dstY + (sy - sr.Min.Y)
		if dy < dstBounds.Min.Y || dy >= dstBounds.Max.Y {
			continue
		}
		for sx := sr.Min.X; sx < sr.Max.X; sx++ {
			dx := dstX + (sx - sr.Min.X)
			if dx < dstBounds.Min.X || dx >= dstBounds.Max.X {
				continue
			}
			px := src.Img.RGBAAt(sx, sy)
			px = applyFilters(px, opts)
			if px.A == 0 {
				continue
			}
			if px.A == 255 {
				dst.Img.SetRGBA(dx, dy, px)
				continue
			}
			dst.Img.SetRGBA(dx, dy, alphaBlend(dst.Img.RGBAAt(dx, dy), px))
		}
	}
	return nil
}

func applyFilters(px color.RGBA, opts BlitOpts) color.RGBA {
	if opts.Grayscale {
		y := uint8((299*uint32(px.R) + 587*uint32(px.G) + 114*uint32(px.B)) / 1000)
		px.R, px.G, px.B = y, y, y
	}
	if opts.Invert {
		px.R, px.G, px.B = 255-px.R, 255-px.G, 255-px.B
	}
	if opts.Alpha != 255 {
		px.A = uint8(uint32(px.A) * uint32(opts.Alpha) / 255)
	}
	return px
}

// CopySurfaceScaled composites src's region srcRect onto dst within
// dstRect, nearest-neighbor scaling if the rectangles differ in size.
// Used by effects (Zoom) that need a shrunk or grown copy rather than a
// 1:1 blit.
func CopySurfaceScaled(dst *Surface, dstRect Rect, src *Surface, srcRect Rect, opts BlitOpts) error {
	if src == nil || dst == nil {
		return fmt.Errorf("gfx: nil surface in CopySurfaceScaled")
	}
	dw, dh := dstRect.Width(), dstRect.Height()
	sw, sh := srcRect.Width(), srcRect.Height()
	if dw <= 0 || dh <= 0 || sw <= 0 || sh <= 0 {
		return nil
	}
	dstBounds := dst.Img.Bounds()
	for dy := 0; dy < dh; dy++ {
		y := dstRect.Y1 + dy
		if y < dstBounds.Min.Y || y >= dstBounds.Max.Y {
			continue
		}
		sy := srcRect.Y1 + dy*sh/dh
		for dx := 0; dx < dw; dx++ {
			x := dstRect.X1 + dx
			if x < dstBounds.Min.X || x >= dstBounds.Max.X {
				continue
			}
			sx := srcRect.X1 + dx*sw/dw
			px := applyFilters(src.Img.RGBAAt(sx, sy), opts)
			if px.A == 0 {
				continue
			}
			if px.A == 255 {
				dst.Img.SetRGBA(x, y, px)
				continue
			}
			dst.Img.SetRGBA(x, y, alphaBlend(dst.Img.RGBAAt(x, y), px))
		}
	}
	return nil
}

func alphaBlend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	inv := 255 - a
	return color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
		A: uint8(a + uint32(dst.A)*inv/255),
	}
}

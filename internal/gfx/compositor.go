package gfx

import "image/color"

// Compositor renders DC0, the back object layer, the front object
// layer, and DC1 (the text-window surface) into the frame buffer in
// that fixed order (§3.5) — generalized from the teacher's
// BG0..BG3 + OAM back-to-front composite in internal/ppu/ppu.go.
type Compositor struct {
	DC0        *Surface // background / scene art
	DC1        *Surface // text window chrome, composited last
	BackLayer  *Layer
	FrontLayer *Layer

	frame *Surface
}

// NewCompositor allocates a compositor with the given output dimensions.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		DC0:        NewSurface(width, height),
		DC1:        NewSurface(width, height),
		BackLayer:  NewLayer(),
		FrontLayer: NewLayer(),
		frame:      NewSurface(width, height),
	}
}

// Render composites every layer into the frame buffer and returns it.
// The returned *Surface is owned by the Compositor and is overwritten
// by the next Render call; callers that need to retain a frame must
// copy it.
func (c *Compositor) Render() *Surface {
	c.frame.Clear(color.RGBA{A: 255})
	full := Rect{X2: c.frame.Width(), Y2: c.frame.Height()}

	CopySurface(c.frame, 0, 0, c.DC0, full, BlitOpts{Alpha: 255})
	c.drawLayer(c.BackLayer)
	c.drawLayer(c.FrontLayer)
	CopySurface(c.frame, 0, 0, c.DC1, full, BlitOpts{Alpha: 255})

	return c.frame
}

func (c *Compositor) drawLayer(layer *Layer) {
	for _, slot := range layer.Slots() {
		obj := layer.Get(slot)
		if obj == nil || !obj.Visible || obj.Source == nil {
			continue
		}
		region := obj.Region
		if obj.Clip != nil {
			region = clipRect(region, *obj.Clip)
		}
		CopySurface(c.frame, obj.X, obj.Y, obj.Source, region, obj.Opts)
	}
}

func clipRect(r, clip Rect) Rect {
	if r.X1 < clip.X1 {
		r.X1 = clip.X1
	}
	if r.Y1 < clip.Y1 {
		r.Y1 = clip.Y1
	}
	if r.X2 > clip.X2 {
		r.X2 = clip.X2
	}
	if r.Y2 > clip.Y2 {
		r.Y2 = clip.Y2
	}
	if r.X2 < r.X1 {
		r.X2 = r.X1
	}
	if r.Y2 < r.Y1 {
		r.Y2 = r.Y1
	}
	return r
}

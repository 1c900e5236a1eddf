// Package host implements the SDL2 window/renderer/audio-device binding
// and event pump of §4.L: the one concrete thing sitting on the other
// end of the vm.Core/gfx.Compositor/sound.Mixer ports, and the CLI
// entrypoint's run loop.
//
// Grounded on the teacher's internal/ui/ui.go (window/renderer/texture
// creation, audio device open, SDL event pump, keyboard-state polling),
// generalized from a fixed 320x200 + info-bar framebuffer to the
// compositor's configurable output size and from the teacher's
// controller bit-field to the VM's event.Event stream.
package host

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"rlvm/internal/event"
	"rlvm/internal/gfx"
	"rlvm/internal/longop"
)

// Window owns the SDL2 window, renderer, and present texture. It knows
// nothing about scenario/opcode semantics — it only blits a *gfx.Surface
// and pumps input.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width, height int
	scale         int
	fullscreen    bool
}

// NewWindow creates an SDL2 window sized width*scale x height*scale and
// a streaming texture matching the compositor's native output size.
func NewWindow(title string, width, height, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("host: sdl init: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0") // nearest-neighbor

	win, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width*scale), int32(height*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("host: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("host: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("host: create texture: %w", err)
	}

	return &Window{window: win, renderer: renderer, texture: texture, width: width, height: height, scale: scale}, nil
}

// Present blits a rendered frame (DC0+layers+DC1 composited into one
// RGBA surface, per gfx.Compositor.Render) to the window.
func (w *Window) Present(frame *gfx.Surface) error {
	pixels, _, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("host: lock texture: %w", err)
	}
	copy(pixels, frame.Img.Pix)
	w.texture.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("host: clear: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("host: copy texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// ToggleFullscreen flips between windowed and desktop-fullscreen.
func (w *Window) ToggleFullscreen() {
	w.fullscreen = !w.fullscreen
	flag := uint32(0)
	if w.fullscreen {
		flag = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	w.window.SetFullscreen(flag)
}

// PollEvents drains the SDL event queue and translates it into the
// VM's event.Event stream (§4.1 step 1), reporting whether a quit was
// requested.
func (w *Window) PollEvents() (events []event.Event, quit bool) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.MouseMotionEvent:
			events = append(events, event.Event{
				Kind:  event.KindMouseMotion,
				Point: scaledPoint(int(ev.X), int(ev.Y), w.scale),
			})
		case *sdl.MouseButtonEvent:
			events = append(events, event.Event{
				Kind:    event.KindMouseButton,
				Point:   scaledPoint(int(ev.X), int(ev.Y), w.scale),
				Button:  sdlButtonIndex(ev.Button),
				Pressed: ev.Type == sdl.MOUSEBUTTONDOWN,
			})
		case *sdl.KeyboardEvent:
			events = append(events, event.Event{
				Kind:    event.KindKey,
				Key:     int(ev.Keysym.Sym),
				Pressed: ev.Type == sdl.KEYDOWN,
			})
		}
	}
	return events, quit
}

func scaledPoint(x, y, scale int) longop.Point {
	if scale <= 0 {
		scale = 1
	}
	return longop.Point{X: x / scale, Y: y / scale}
}

func sdlButtonIndex(b uint8) int {
	switch b {
	case sdl.BUTTON_LEFT:
		return 0
	case sdl.BUTTON_RIGHT:
		return 1
	case sdl.BUTTON_MIDDLE:
		return 2
	default:
		return int(b)
	}
}

// Close tears down the SDL window, renderer, texture, and subsystems.
func (w *Window) Close() {
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}

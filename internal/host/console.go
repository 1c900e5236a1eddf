package host

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"rlvm/internal/debug"
)

// DebugConsole is a separate Fyne window showing the component-tagged
// log stream, trimmed from the teacher's panels.LogViewerFyne (register/
// memory/tile viewers dropped — see DESIGN.md; there is no fixed
// register file or tile RAM in this VM, so only the log viewer
// generalizes).
type DebugConsole struct {
	app    fyne.App
	window fyne.Window
	logger *debug.Logger
	text   *widget.Entry
}

// NewDebugConsole builds (but does not show) a log viewer window bound
// to logger.
func NewDebugConsole(logger *debug.Logger) *DebugConsole {
	a := app.New()
	w := a.NewWindow("rlvm debug console")

	logText := widget.NewMultiLineEntry()
	logText.Wrapping = fyne.TextWrapOff
	logText.Disable()
	scroll := container.NewScroll(logText)
	scroll.SetMinSize(fyne.NewSize(700, 420))

	copyBtn := widget.NewButton("Copy All", func() {
		if logText.Text != "" {
			w.Clipboard().SetContent(logText.Text)
		}
	})

	w.SetContent(container.NewBorder(nil, copyBtn, nil, nil, scroll))

	return &DebugConsole{app: a, window: w, logger: logger, text: logText}
}

// Refresh re-renders the logger's current buffer into the text widget.
// The host run loop calls this periodically (it is not wired to every
// frame — the log viewer is a diagnostic aid, not part of §4.1's
// run_one_frame contract).
func (c *DebugConsole) Refresh() {
	var out string
	for _, e := range c.logger.GetEntries() {
		out += e.Format() + "\n"
	}
	c.text.SetText(out)
}

// Show displays the console window without blocking; the caller's main
// loop continues to drive the game window.
func (c *DebugConsole) Show() { c.window.Show() }

func (c *DebugConsole) Close() { c.window.Close() }

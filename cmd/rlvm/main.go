// Command rlvm is the CLI entrypoint of §4.L/§6.5: it takes a single
// argument, the game directory, loads that game's Gameexe.ini, wires up
// the interpreter core and its ambient subsystems, and runs the host
// window's frame loop until the window is closed or the scenario halts.
//
// Grounded on the teacher's cmd/emulator/main.go (flag parsing, ROM load,
// logger construction, UI handoff), generalized from "-rom <path>" to
// the spec's "one argument: the game directory" contract.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"rlvm/internal/config"
	"rlvm/internal/debug"
	"rlvm/internal/gfx"
	"rlvm/internal/host"
	"rlvm/internal/save"
	"rlvm/internal/scenario"
	"rlvm/internal/sound"
	"rlvm/internal/vm"
)

const (
	screenWidth  = 640
	screenHeight = 480
	displayScale = 1
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rlvm <game-directory>")
		os.Exit(1)
	}
	gameDir := os.Args[1]

	if err := run(gameDir); err != nil {
		fmt.Fprintf(os.Stderr, "rlvm: %v\n", err)
		os.Exit(1)
	}
}

func run(gameDir string) error {
	logger := debug.NewLogger(10000)
	if os.Getenv("RLVM_LOG") != "" {
		for _, c := range []debug.Component{
			debug.ComponentScenario, debug.ComponentMemory, debug.ComponentOpcode,
			debug.ComponentLongOp, debug.ComponentText, debug.ComponentSound,
			debug.ComponentGfx, debug.ComponentGameexe, debug.ComponentHost,
		} {
			logger.SetComponentEnabled(c, true)
		}
	}

	gameexePath := filepath.Join(gameDir, "Gameexe.ini")
	f, err := os.Open(gameexePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", gameexePath, err)
	}
	gameexe, err := config.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse Gameexe.ini: %w", err)
	}

	regname := gameexe.Str("REGNAME", "unknown")
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	savePath := save.GlobalSavePath(homeDir, regname)
	logger.LogSystem(debug.LogLevelInfo, "save directory", map[string]interface{}{"path": save.Dir(homeDir, regname)})

	// Bytecode decoding is an external collaborator (§1): a real
	// deployment would plug in a decoder producing a scenario.Source
	// over the game's compiled scenario files. Absent one, rlvm starts
	// an empty in-memory source so the host, audio, and save-state
	// plumbing below are fully wired and exercised even with no script
	// loaded yet.
	src := scenario.NewMemSource()

	core := vm.NewCore(src, gameexe, logger)

	if state, err := save.Read(savePath); err == nil {
		if err := state.Restore(core.Banks); err != nil {
			logger.LogSystem(debug.LogLevelWarning, "failed to restore save state", map[string]interface{}{"error": err.Error()})
		} else {
			core.Jump(state.Position)
			core.RestoreCallFrames(state.CallStack)
		}
	}

	comp := gfx.NewCompositor(screenWidth, screenHeight)
	mixer := sound.NewMixer()

	seTable, _ := gameexe.SETable()
	finder := config.NewFileFinder(gameexe)
	loader := func(stem string) ([]byte, error) {
		path, err := finder.Find(stem, config.SoundFiletypes)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
	if _, err := sound.NewSEPlayer(mixer, seTable, loader, 64); err != nil {
		return fmt.Errorf("create SE player: %w", err)
	}

	tracks, _ := gameexe.DSTracks()
	_ = sound.NewBGMStreamer(mixer, tracks, gameexe.CDTrackNames(), loader)

	win, err := host.NewWindow("rlvm — "+regname, screenWidth, screenHeight, displayScale)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	clock := host.NewRealClock()
	audio := host.NewAudioOut(clock.NowMs)
	defer audio.Close()

	runErr := host.Run(win, audio, core, comp, mixer, clock)

	snapshot := save.Snapshot(core.Banks, core.Position(), core.CallFrames())
	if err := save.Write(savePath, snapshot); err != nil {
		logger.LogSystem(debug.LogLevelWarning, "failed to write save state", map[string]interface{}{"error": err.Error()})
	}

	return runErr
}

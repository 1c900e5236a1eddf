// Package debug is the engine's centralized, component-tagged logger.
// Grounded on the teacher's internal/debug (log_entry.go, logger.go):
// circular buffer, per-component enable flags, minimum-level filter, async
// channel drain. Generalized from CPU/PPU/APU/Input/UI/System components to
// the interpreter's own subsystems.
package debug

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component names the subsystem that generated a log entry.
type Component string

const (
	ComponentScenario Component = "Scenario"
	ComponentMemory   Component = "Memory"
	ComponentOpcode   Component = "Opcode"
	ComponentLongOp   Component = "LongOp"
	ComponentText     Component = "Text"
	ComponentSound    Component = "Sound"
	ComponentGfx      Component = "Gfx"
	ComponentGameexe  Component = "Gameexe"
	ComponentHost     Component = "Host"
	ComponentSystem   Component = "System"
)

// LogEntry is a single log record.
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{}
}

func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}

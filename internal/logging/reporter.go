// Package logging provides the event reporting collaborator the core calls
// on every state transition. Reporters never return errors and must never
// influence core behavior.
package logging

// Level is the severity of a reported event.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Reporter receives structured event reports from the core.
type Reporter interface {
	Report(component string, level Level, module, message string, data map[string]any)
}

// Nop is a Reporter that discards everything.
type Nop struct{}

func (Nop) Report(string, Level, string, string, map[string]any) {}

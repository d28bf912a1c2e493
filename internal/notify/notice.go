// Package notify fans run notices out to the presentation layers.
package notify

import (
	"time"
)

// Level classifies a notice for display.
type Level string

// Notice levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a short user-facing message emitted by the engine.
type Notice struct {
	Level     Level             `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// New creates a notice stamped with the current time.
func New(level Level, title, message string) Notice {
	return Notice{
		Level:     level,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithField returns a copy of the notice with key set.
func (n Notice) WithField(key, value string) Notice {
	fields := make(map[string]string, len(n.Fields)+1)
	for k, v := range n.Fields {
		fields[k] = v
	}
	fields[key] = value
	n.Fields = fields
	return n
}

// String renders the notice on one line.
func (n Notice) String() string {
	if n.Message == "" {
		return n.Title
	}
	return n.Title + " " + n.Message
}

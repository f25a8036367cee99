// Package host declares the editor-facing services the core calls back into.
package host

import "go.uber.org/zap"

// Host surfaces notifications to the user.
type Host interface {
	ShowErrorMessage(message string)
}

// Command is an editor command invocation.
type Command struct {
	Title     string `json:"title"`
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

// LogHost is a Host that reports messages to a logger. It is used when no
// interactive front end is attached.
type LogHost struct {
	log *zap.Logger
}

// NewLogHost creates a LogHost. A nil logger discards messages.
func NewLogHost(log *zap.Logger) *LogHost {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogHost{log: log}
}

func (h *LogHost) ShowErrorMessage(message string) {
	h.log.Error(message)
}

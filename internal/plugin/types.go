// Package plugin provides discovery and execution of external feedback
// plugins. Plugins are standalone executables that subscribe to workout
// events (rep counted, set finished, rest over, workout complete) and
// receive the session state as JSON on stdin.
package plugin

import "encoding/json"

// Workout events a plugin can subscribe to.
const (
	EventRepComplete     = "rep_complete"
	EventSetComplete     = "set_complete"
	EventRestFinished    = "rest_finished"
	EventWorkoutComplete = "workout_complete"
)

// Manifest describes a plugin's metadata and the events it handles.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is the payload sent to a plugin on each event.
type Request struct {
	Event    string          `json:"event"`
	Exercise string          `json:"exercise"`
	Session  json.RawMessage `json:"session"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// HandlesEvent reports whether the plugin subscribed to the given event.
// A plugin that lists no events receives everything.
func (p *Plugin) HandlesEvent(event string) bool {
	if len(p.Manifest.Events) == 0 {
		return true
	}
	for _, e := range p.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}

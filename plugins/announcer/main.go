// Package main provides a voice announcer plugin for workout milestones.
// It speaks set, rest, and completion events using the platform's
// text-to-speech command (say on macOS, espeak on Linux).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the plugin executor.
type Request struct {
	Event    string          `json:"event"`
	Exercise string          `json:"exercise"`
	Session  json.RawMessage `json:"session"`
	Config   json.RawMessage `json:"config"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// sessionState is the subset of the session snapshot the announcer reads.
type sessionState struct {
	SetsCompleted  int    `json:"sets_completed"`
	LastRepQuality string `json:"last_rep_quality"`
	Plan           struct {
		TargetSets int `json:"target_sets"`
	} `json:"plan"`
}

// config holds the optional per-binding settings.
type config struct {
	Voice string `json:"voice"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var state sessionState
	if len(req.Session) > 0 {
		if err := json.Unmarshal(req.Session, &state); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to decode session: %v", err))
			return
		}
	}

	var cfg config
	if len(req.Config) > 0 {
		json.Unmarshal(req.Config, &cfg)
	}

	phrase := phraseFor(req.Event, &state)
	if phrase == "" {
		// Event we have nothing to say about; still a success.
		writeSuccessResponse()
		return
	}

	if err := speak(phrase, cfg.Voice); err != nil {
		writeErrorResponse(fmt.Sprintf("speech failed: %v", err))
		return
	}

	writeSuccessResponse()
}

// phraseFor builds the spoken phrase for an event, or "" for events the
// announcer ignores.
func phraseFor(event string, state *sessionState) string {
	switch event {
	case "set_complete":
		return fmt.Sprintf("Set %d of %d complete. Rest now.",
			state.SetsCompleted, state.Plan.TargetSets)
	case "rest_finished":
		return fmt.Sprintf("Rest over. Start set %d.", state.SetsCompleted+1)
	case "workout_complete":
		return "Workout complete. Nice work."
	default:
		return ""
	}
}

// speak runs the platform text-to-speech command with the given phrase.
func speak(phrase, voice string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		if voice != "" {
			cmd = exec.Command("say", "-v", voice, phrase)
		} else {
			cmd = exec.Command("say", phrase)
		}
	default:
		if voice != "" {
			cmd = exec.Command("espeak", "-v", voice, phrase)
		} else {
			cmd = exec.Command("espeak", phrase)
		}
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/repcoach/internal/app"
	"github.com/ayusman/repcoach/internal/store"
	"github.com/ayusman/repcoach/internal/tracker"
)

// SessionHandler handles HTTP requests controlling the tracking session.
type SessionHandler struct {
	app   *app.App
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(a *app.App, s *store.Store) *SessionHandler {
	return &SessionHandler{app: a, store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/session, /api/session/start, /api/session/stop,
	// /api/session/reset
	path := strings.TrimPrefix(r.URL.Path, "/api/session")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.get(w, r)
	case "start":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.start(w, r)
	case "stop":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stop(w, r)
	case "reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reset(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Request and response types

type startSessionRequest struct {
	ExerciseID string        `json:"exercise_id"`
	Plan       *tracker.Plan `json:"plan"`
}

type sessionResponse struct {
	Active     bool             `json:"active"`
	ExerciseID string           `json:"exercise_id,omitempty"`
	Session    *tracker.Session `json:"session,omitempty"`
}

// get handles GET /api/session and returns the current session snapshot.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	tr := h.app.Tracker()
	if tr == nil {
		writeJSON(w, http.StatusOK, sessionResponse{Active: false})
		return
	}

	snapshot := tr.Snapshot()
	writeJSON(w, http.StatusOK, sessionResponse{
		Active:     tr.Active(),
		ExerciseID: h.app.ExerciseID(),
		Session:    &snapshot,
	})
}

// start handles POST /api/session/start. The plan may be supplied inline or
// fall back to the exercise's stored plan.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ExerciseID == "" {
		writeError(w, http.StatusBadRequest, "exercise_id is required")
		return
	}

	ex, err := h.store.Exercises().GetByID(req.ExerciseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get exercise")
		return
	}

	plan := req.Plan
	if plan == nil {
		stored, err := h.store.Plans().GetByExerciseID(req.ExerciseID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to get plan")
			return
		}
		if stored == nil {
			writeError(w, http.StatusBadRequest, "No plan supplied and none stored for this exercise")
			return
		}
		plan = &tracker.Plan{
			TargetSets:       stored.TargetSets,
			TargetRepsPerSet: stored.TargetRepsPerSet,
			RestSeconds:      stored.RestSeconds,
			TargetWeight:     stored.TargetWeight,
		}
	}

	if err := h.app.StartSession(ex.Definition, *plan); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	snapshot := h.app.Tracker().Snapshot()
	writeJSON(w, http.StatusCreated, sessionResponse{
		Active:     true,
		ExerciseID: req.ExerciseID,
		Session:    &snapshot,
	})
}

// stop handles POST /api/session/stop and discards the running session.
func (h *SessionHandler) stop(w http.ResponseWriter, r *http.Request) {
	h.app.StopSession()
	writeJSON(w, http.StatusOK, sessionResponse{Active: false})
}

// reset handles POST /api/session/reset. It restarts the running session's
// counters, which is the only way out of a completed workout.
func (h *SessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	tr := h.app.Tracker()
	if tr == nil {
		writeError(w, http.StatusConflict, "No session running")
		return
	}

	tr.Reset()

	snapshot := tr.Snapshot()
	writeJSON(w, http.StatusOK, sessionResponse{
		Active:     true,
		ExerciseID: h.app.ExerciseID(),
		Session:    &snapshot,
	})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/repcoach/internal/store"
)

// PlanHandler handles HTTP requests for workout plan resources.
type PlanHandler struct {
	store *store.Store
}

// NewPlanHandler creates a new PlanHandler with the given store.
func NewPlanHandler(s *store.Store) *PlanHandler {
	return &PlanHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/plans or /api/plans/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/plans")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createPlanRequest struct {
	ExerciseID       string  `json:"exercise_id"`
	TargetSets       int     `json:"target_sets"`
	TargetRepsPerSet int     `json:"target_reps_per_set"`
	RestSeconds      int     `json:"rest_seconds"`
	TargetWeight     float64 `json:"target_weight"`
}

type updatePlanRequest struct {
	TargetSets       *int     `json:"target_sets"`
	TargetRepsPerSet *int     `json:"target_reps_per_set"`
	RestSeconds      *int     `json:"rest_seconds"`
	TargetWeight     *float64 `json:"target_weight"`
}

type planResponse struct {
	ID               string  `json:"id"`
	ExerciseID       string  `json:"exercise_id"`
	TargetSets       int     `json:"target_sets"`
	TargetRepsPerSet int     `json:"target_reps_per_set"`
	RestSeconds      int     `json:"rest_seconds"`
	TargetWeight     float64 `json:"target_weight"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type listPlansResponse struct {
	Plans []planResponse `json:"plans"`
}

// toPlanResponse converts a store.Plan to a planResponse.
func toPlanResponse(p *store.Plan) planResponse {
	return planResponse{
		ID:               p.ID,
		ExerciseID:       p.ExerciseID,
		TargetSets:       p.TargetSets,
		TargetRepsPerSet: p.TargetRepsPerSet,
		RestSeconds:      p.RestSeconds,
		TargetWeight:     p.TargetWeight,
		CreatedAt:        p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/plans and returns all plans.
func (h *PlanHandler) list(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.Plans().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	response := listPlansResponse{
		Plans: make([]planResponse, 0, len(plans)),
	}

	for _, p := range plans {
		response.Plans = append(response.Plans, toPlanResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/plans/{id} and returns a single plan.
func (h *PlanHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	plan, err := h.store.Plans().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get plan")
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// create handles POST /api/plans and creates a new plan.
func (h *PlanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ExerciseID == "" {
		writeError(w, http.StatusBadRequest, "exercise_id is required")
		return
	}
	if req.TargetSets <= 0 {
		writeError(w, http.StatusBadRequest, "target_sets must be positive")
		return
	}
	if req.TargetRepsPerSet <= 0 {
		writeError(w, http.StatusBadRequest, "target_reps_per_set must be positive")
		return
	}
	if req.RestSeconds < 0 {
		writeError(w, http.StatusBadRequest, "rest_seconds must not be negative")
		return
	}

	// Verify the exercise exists
	if _, err := h.store.Exercises().GetByID(req.ExerciseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify exercise")
		return
	}

	plan := &store.Plan{
		ID:               uuid.New().String(),
		ExerciseID:       req.ExerciseID,
		TargetSets:       req.TargetSets,
		TargetRepsPerSet: req.TargetRepsPerSet,
		RestSeconds:      req.RestSeconds,
		TargetWeight:     req.TargetWeight,
	}

	if err := h.store.Plans().Create(plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	writeJSON(w, http.StatusCreated, toPlanResponse(plan))
}

// update handles PUT /api/plans/{id} and updates an existing plan.
func (h *PlanHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	plan, err := h.store.Plans().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get plan")
		return
	}

	var req updatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.TargetSets != nil {
		if *req.TargetSets <= 0 {
			writeError(w, http.StatusBadRequest, "target_sets must be positive")
			return
		}
		plan.TargetSets = *req.TargetSets
	}
	if req.TargetRepsPerSet != nil {
		if *req.TargetRepsPerSet <= 0 {
			writeError(w, http.StatusBadRequest, "target_reps_per_set must be positive")
			return
		}
		plan.TargetRepsPerSet = *req.TargetRepsPerSet
	}
	if req.RestSeconds != nil {
		if *req.RestSeconds < 0 {
			writeError(w, http.StatusBadRequest, "rest_seconds must not be negative")
			return
		}
		plan.RestSeconds = *req.RestSeconds
	}
	if req.TargetWeight != nil {
		plan.TargetWeight = *req.TargetWeight
	}

	if err := h.store.Plans().Update(plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// delete handles DELETE /api/plans/{id} and removes a plan.
func (h *PlanHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Plans().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

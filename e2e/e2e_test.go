package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/repcoach/internal/app"
	"github.com/ayusman/repcoach/internal/pose"
	"github.com/ayusman/repcoach/internal/server"
	"github.com/ayusman/repcoach/internal/store"
	"github.com/ayusman/repcoach/internal/tracker"
	"github.com/ayusman/repcoach/testdata"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:     s,
		PluginDir: filepath.Join(tmpDir, "plugins"),
		CameraID:  -1,
	})
	application.SetDetector(pose.NewMockDetector())

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateExercise", func(t *testing.T) {
		body, _ := json.Marshal(testdata.SquatDefinition())
		resp, err := client.Post(ts.URL+"/api/exercises", "application/json", bytes.NewBuffer(body))
		if err != nil {
			t.Fatalf("create exercise error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("CreatePlan", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/plans",
			"application/json",
			strings.NewReader(`{"exercise_id":"squat","target_sets":2,"target_reps_per_set":2}`),
		)
		if err != nil {
			t.Fatalf("create plan error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("StartSessionUsesStoredPlan", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/session/start",
			"application/json",
			strings.NewReader(`{"exercise_id":"squat"}`),
		)
		if err != nil {
			t.Fatalf("start session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var started struct {
			Session *tracker.Session `json:"session"`
		}
		json.NewDecoder(resp.Body).Decode(&started)
		if started.Session == nil || started.Session.Plan.TargetSets != 2 {
			t.Fatalf("session plan = %+v, want stored plan", started.Session)
		}
	})

	t.Run("TrackWorkoutToCompletion", func(t *testing.T) {
		// Four reps across two sets, fed through the same path the
		// camera pipeline uses.
		for _, f := range testdata.RepSequence(4) {
			application.Tracker().ProcessFrame(f)
		}

		resp, _ := client.Get(ts.URL + "/api/session")
		defer resp.Body.Close()

		var state struct {
			Active  bool `json:"active"`
			Session struct {
				SetsCompleted   int  `json:"sets_completed"`
				WorkoutComplete bool `json:"workout_complete"`
			} `json:"session"`
		}
		json.NewDecoder(resp.Body).Decode(&state)

		if !state.Active {
			t.Fatal("session should still be active")
		}
		if state.Session.SetsCompleted != 2 || !state.Session.WorkoutComplete {
			t.Errorf("session = %+v, want 2 sets and workout complete", state.Session)
		}
	})

	t.Run("StopSession", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/session/stop", "application/json", nil)
		if err != nil {
			t.Fatalf("stop session error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if application.Tracker() != nil {
			t.Error("tracker should be gone after stop")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after session operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_EventBinding(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "data.db"))
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	bindingReq := map[string]interface{}{
		"event":       "set_complete",
		"plugin_name": "announcer",
		"config":      map[string]string{"voice": "en"},
		"enabled":     true,
	}
	bindingBody, _ := json.Marshal(bindingReq)

	resp, err := client.Post(ts.URL+"/api/bindings", "application/json", bytes.NewBuffer(bindingBody))
	if err != nil {
		t.Fatalf("create binding error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("create binding status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/bindings")
	if err != nil {
		t.Fatalf("list bindings error = %v", err)
	}

	var listResp struct {
		Bindings []struct {
			ID         string `json:"id"`
			Event      string `json:"event"`
			PluginName string `json:"plugin_name"`
			Enabled    bool   `json:"enabled"`
		} `json:"bindings"`
	}
	json.NewDecoder(resp.Body).Decode(&listResp)
	resp.Body.Close()

	if len(listResp.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(listResp.Bindings))
	}
	if listResp.Bindings[0].Event != "set_complete" || listResp.Bindings[0].PluginName != "announcer" {
		t.Errorf("binding = %+v", listResp.Bindings[0])
	}
}

func TestE2E_InvalidDefinitionRejectedEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "data.db"))
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	def := testdata.SquatDefinition()
	def.Positions.Rep.Conditions[0].Metric = "no_such_metric"
	body, _ := json.Marshal(def)

	resp, err := ts.Client().Post(ts.URL+"/api/exercises", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("create exercise error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	// Nothing was persisted
	if _, err := s.Exercises().GetByID("squat"); err == nil {
		t.Error("invalid definition should not be stored")
	}
}

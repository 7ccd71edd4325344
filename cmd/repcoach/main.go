package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/repcoach/internal/app"
	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/server"
	"github.com/ayusman/repcoach/internal/store"
	"github.com/ayusman/repcoach/internal/tracker"
	"github.com/ayusman/repcoach/internal/tray"
)

func main() {
	fmt.Println("RepCoach - Exercise Repetition Tracking")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".repcoach")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "repcoach.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Exercise definition files dropped into ~/.repcoach/exercises are
	// imported on startup.
	if err := importDefinitions(st, filepath.Join(dataDir, "exercises")); err != nil {
		log.Printf("Failed to import exercise definitions: %v", err)
	}

	a := app.New(app.Config{
		Store:     st,
		PluginDir: findPluginDir(dataDir),
		CameraID:  0,
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Printf("Pipeline not started (no camera?): %v", err)
	}
	defer a.Stop()

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	runTray(a)
}

// runTray blocks on the system tray loop and mirrors session progress into
// the tray menu.
func runTray(a *app.App) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// The session socket already consumes the app hooks; chain the tray
	// display after it.
	prevEvent := a.OnEvent
	a.OnEvent = func(event string, session tracker.Session) {
		if prevEvent != nil {
			prevEvent(event, session)
		}
		t.SetProgress(a.ExerciseID(), session.SetsCompleted, session.Plan.TargetSets, session.RepsInSet)
		t.SetLastRepQuality(session.LastRepQuality)
	}

	t.Run()
}

// importDefinitions loads *.json exercise definitions from dir and stores
// any that are not yet in the database.
func importDefinitions(st *store.Store, dir string) error {
	defs, err := exercise.LoadDir(dir)
	if err != nil {
		return err
	}

	for _, def := range defs {
		_, err := st.Exercises().GetByID(def.ID)
		if err == nil {
			continue // already imported
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := st.Exercises().Create(&store.Exercise{
			ID:         def.ID,
			Name:       def.Name,
			Category:   def.Category,
			Definition: def,
		}); err != nil {
			return fmt.Errorf("import %s: %w", def.ID, err)
		}
		log.Printf("Imported exercise definition: %s", def.ID)
	}

	return nil
}

// findPluginDir returns the first existing plugin directory: ./plugins or
// ~/.repcoach/plugins. Falls back to the latter even when missing so a
// later Discover picks it up once created.
func findPluginDir(dataDir string) string {
	if info, err := os.Stat("plugins"); err == nil && info.IsDir() {
		if abs, err := filepath.Abs("plugins"); err == nil {
			return abs
		}
		return "plugins"
	}
	return filepath.Join(dataDir, "plugins")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.repcoach/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

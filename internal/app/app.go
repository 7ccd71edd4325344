// Package app provides the main application logic for the RepCoach workout
// tracking system.
package app

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/repcoach/internal/capture"
	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/plugin"
	"github.com/ayusman/repcoach/internal/pose"
	"github.com/ayusman/repcoach/internal/store"
	"github.com/ayusman/repcoach/internal/tracker"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// pluginTimeoutMs bounds each feedback plugin execution.
	pluginTimeoutMs = 5000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
}

// App is the main application that orchestrates pose detection, rep tracking
// and feedback plugin execution.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   pose.Detector
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	tracker    *tracker.Tracker
	exerciseID string
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}

	// OnMetrics is invoked for every processed frame of an active session.
	OnMetrics func(metrics exercise.Metrics, instruction string)
	// OnEvent is invoked for every progression event with a session snapshot.
	OnEvent func(event string, session tracker.Session)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(pluginTimeoutMs),
		enabled:    true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := pose.NewMediaPipeDetector(pose.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = pose.NewMockDetector()
	}

	return a
}

// SetEnabled pauses or resumes frame processing without ending the session.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d pose.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera implementation, for tests and playback.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// StartSession begins tracking the given exercise against a workout plan.
// It fails if a session is already running or the definition is invalid.
func (a *App) StartSession(def *exercise.Definition, plan tracker.Plan) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker != nil && a.tracker.Active() {
		return fmt.Errorf("session already running for exercise %s", a.exerciseID)
	}

	tr, err := tracker.New(def, plan)
	if err != nil {
		return err
	}

	exerciseID := def.ID
	tr.OnMetricsUpdate = func(m exercise.Metrics, instruction string) {
		if cb := a.metricsHook(); cb != nil {
			cb(m, instruction)
		}
	}
	tr.OnRepComplete = func(tracker.RepEvent) {
		a.fireEvent(plugin.EventRepComplete, tr, exerciseID)
	}
	tr.OnSetComplete = func(int) {
		a.fireEvent(plugin.EventSetComplete, tr, exerciseID)
	}
	tr.OnWorkoutComplete = func() {
		a.fireEvent(plugin.EventWorkoutComplete, tr, exerciseID)
	}
	tr.OnRestFinished = func() {
		a.fireEvent(plugin.EventRestFinished, tr, exerciseID)
	}

	a.tracker = tr
	a.exerciseID = exerciseID

	log.Printf("Session started: exercise=%s sets=%d reps=%d rest=%ds",
		exerciseID, plan.TargetSets, plan.TargetRepsPerSet, plan.RestSeconds)
	return nil
}

// StopSession ends the current tracking session, discarding its state.
func (a *App) StopSession() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker == nil {
		return
	}

	a.tracker.Stop()
	a.tracker = nil
	a.exerciseID = ""
	log.Println("Session stopped")
}

// Tracker returns the active session tracker, or nil if none is running.
func (a *App) Tracker() *tracker.Tracker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tracker
}

// ExerciseID returns the exercise ID of the active session.
func (a *App) ExerciseID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.exerciseID
}

func (a *App) metricsHook() func(exercise.Metrics, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.OnMetrics
}

// fireEvent notifies listeners of a progression event and kicks off the
// bound feedback plugins. Plugin execution happens off the pipeline
// goroutine so a slow plugin never stalls frame processing.
func (a *App) fireEvent(event string, tr *tracker.Tracker, exerciseID string) {
	snapshot := tr.Snapshot()

	a.mu.RLock()
	onEvent := a.OnEvent
	a.mu.RUnlock()
	if onEvent != nil {
		onEvent(event, snapshot)
	}

	go a.runPlugins(event, exerciseID, snapshot)
}

func (a *App) runPlugins(event, exerciseID string, snapshot tracker.Session) {
	sessionJSON, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Failed to marshal session for event %s: %v", event, err)
		return
	}

	executed := make(map[string]bool)

	// Stored bindings run first, with their configured payload.
	if a.config.Store != nil {
		bindings, err := a.config.Store.Bindings().ListByEvent(event)
		if err != nil {
			log.Printf("Failed to load bindings for event %s: %v", event, err)
		} else {
			for _, b := range bindings {
				plug, err := a.pluginMgr.Get(b.PluginName)
				if err != nil {
					log.Printf("Binding %s references unknown plugin %q", b.ID, b.PluginName)
					continue
				}
				executed[b.PluginName] = true
				a.execute(plug, &plugin.Request{
					Event:    event,
					Exercise: exerciseID,
					Session:  sessionJSON,
					Config:   b.Config,
				})
			}
		}
	}

	// Plugins that subscribe via their manifest run without extra config.
	for _, plug := range a.pluginMgr.Subscribers(event) {
		if executed[plug.Manifest.Name] {
			continue
		}
		a.execute(plug, &plugin.Request{
			Event:    event,
			Exercise: exerciseID,
			Session:  sessionJSON,
		})
	}
}

func (a *App) execute(plug *plugin.Plugin, req *plugin.Request) {
	resp, err := a.pluginExec.Execute(plug, req)
	if err != nil {
		log.Printf("Plugin %s failed on %s: %v", plug.Manifest.Name, req.Event, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s rejected %s: %s", plug.Manifest.Name, req.Event, resp.Error)
	}
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the capture and tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.tracker != nil {
		a.tracker.Stop()
		a.tracker = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the pose detector.
func (a *App) Detector() pose.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

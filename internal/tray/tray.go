// Package tray provides a system tray interface for the RepCoach workout
// tracking system.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onSettings func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle   *systray.MenuItem
	menuProgress *systray.MenuItem
	menuQuality  *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("RepCoach")
	systray.SetTooltip("RepCoach Workout Tracking")

	t.menuToggle = systray.AddMenuItem("● Tracking", "Pause or resume tracking")
	systray.AddSeparator()

	t.menuProgress = systray.AddMenuItem("No session", "Current set and rep progress")
	t.menuProgress.Disable()
	t.menuQuality = systray.AddMenuItem("Last rep: none", "Quality of the last counted rep")
	t.menuQuality.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit RepCoach")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Tracking")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetProgress updates the set and rep progress display in the menu. Calling
// it with no exercise clears the caption back to "No session".
func (t *Tray) SetProgress(exercise string, setsCompleted, targetSets, repsInSet int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuProgress == nil {
		return
	}
	if exercise == "" {
		t.menuProgress.SetTitle("No session")
		return
	}
	t.menuProgress.SetTitle(fmt.Sprintf("%s: set %d/%d, rep %d",
		exercise, setsCompleted+1, targetSets, repsInSet))
}

// SetLastRepQuality updates the last rep quality display in the menu.
func (t *Tray) SetLastRepQuality(tier string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuQuality == nil {
		return
	}
	if tier == "" {
		t.menuQuality.SetTitle("Last rep: none")
	} else {
		t.menuQuality.SetTitle("Last rep: " + tier)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

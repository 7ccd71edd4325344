package app

import (
	"log"
	"time"
)

// runPipeline is the main loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on
// motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5)
// 2. On motion detected, switch to active mode (ActiveFPS=15)
// 3. Run pose detection on the frame
// 4. Feed the landmark frame to the session tracker
// 5. Tick the rest countdown once per second
// 6. After 2s of no motion, switch back to idle mode
//
// The rest tick shares the select loop with frame processing, so a tick and
// a frame never interleave.
//
// The stop channel is passed in rather than read from the App so Stop can
// nil out its own reference without racing this goroutine.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()

	restTicker := time.NewTicker(time.Second)
	defer restTicker.Stop()

	for {
		select {
		case <-stopCh:
			return

		case <-restTicker.C:
			if tr := a.Tracker(); tr != nil {
				tr.Tick()
			}

		case <-frameTicker.C:
			// Skip processing if tracking is paused
			if !a.IsEnabled() {
				continue
			}

			camera := a.Camera()
			frame, err := camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					frameTicker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					frameTicker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			tr := a.Tracker()
			detector := a.Detector()

			// Skip pose detection if idle or no session is running
			if !activeMode || tr == nil || detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Pose detection
			poseFrame, err := detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			// Step 3: Rep tracking. A nil frame means no body was detected;
			// the tracker logs and skips it.
			tr.ProcessFrame(poseFrame)
		}
	}
}

package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/store"
)

// run is the frame loop. Each tick reads one frame and evaluates at
// most one decision path, chosen by the current mode and gated by wall
// clock. Nothing in here blocks: the remote recognizer is dispatched on
// its own goroutine and reports back through settleCapture.
func (e *Engine) run(stopCh chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !e.IsEnabled() {
				continue
			}

			frame, err := e.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			e.step(frame)
			frame.Close()
		}
	}
}

// step evaluates one frame on the active path.
func (e *Engine) step(frame *gocv.Mat) {
	e.mu.Lock()
	mode := e.mode
	now := e.now()

	switch mode {
	case ModeLocal:
		if !e.lastLocal.IsZero() && now.Sub(e.lastLocal) < e.localInterval() {
			e.mu.Unlock()
			return
		}
		e.lastLocal = now
		tracker := e.tracker
		gen := e.generation
		e.mu.Unlock()

		// The tracker call runs outside the lock; its per-call latency
		// doubles as the backend speed measurement.
		t0 := time.Now()
		result, err := tracker.Track(frame)
		latency := time.Since(t0)
		if err != nil {
			log.Printf("Error tracking hands: %v", err)
			result = nil
		}

		e.mu.Lock()
		// A reset (stop, disable, mode switch) while the tracker was
		// running invalidates this observation.
		if gen == e.generation {
			e.stepLocal(result, latency, now)
		}
		e.mu.Unlock()

	case ModeCloud:
		if !e.lastRemote.IsZero() && now.Sub(e.lastRemote) < RemoteInterval {
			e.mu.Unlock()
			return
		}
		e.lastRemote = now

		fire := e.stepRemote(frame, now)
		gen := e.generation
		e.mu.Unlock()

		if fire {
			e.dispatchCapture(frame, gen)
		}

	default:
		e.mu.Unlock()
	}
}

// localInterval returns the local-path gate for the current backend
// assumption. Callers must hold e.mu.
func (e *Engine) localInterval() time.Duration {
	if e.slowTracker {
		return LocalIntervalSlow
	}
	return LocalInterval
}

// stepLocal feeds one tracker result through the classifier and the
// segmentation machine. A nil result (tracker failure or garbled
// output) degrades to "no hand"; it is never an error. Callers must
// hold e.mu.
func (e *Engine) stepLocal(result *detector.Result, latency time.Duration, now time.Time) {
	if latency > SlowTrackerLatency && !e.slowTracker {
		// One-way downgrade: a slow call means the accelerator fell
		// back to software, so pace the tracker down for the rest of
		// the session.
		e.slowTracker = true
		log.Printf("Tracker latency %v exceeds %v, throttling local path to %v",
			latency, SlowTrackerLatency, LocalIntervalSlow)
	}

	obs := classify.Observation{Label: classify.None}
	handPresent := result.HandPresent()
	if handPresent {
		obs.Label = result.Category
		obs.Score = result.Score
		if obs.Label == "" {
			obs.Label = classify.None
		}

		if label, ok := classify.Classify(result.PrimaryHand()); ok {
			obs.Label = label
			obs.Score = classify.OverrideScore
		}
	}

	state, event := e.segmenter.Step(handPresent, obs)
	e.state = string(state)

	if event != nil {
		e.confirm(event.Label, event.At)
	}
}

// confirm resolves the gloss for a confirmed label, records the event,
// and notifies the presentation layer. Callers must hold e.mu.
func (e *Engine) confirm(label string, at time.Time) {
	display := label
	if e.config.Store != nil {
		display = e.config.Store.Glosses().Display(label)

		err := e.config.Store.Events().Append(&store.Event{
			ID:        uuid.NewString(),
			Kind:      store.EventConfirmed,
			Label:     label,
			CreatedAt: at,
		})
		if err != nil {
			log.Printf("Failed to record confirmed gesture: %v", err)
		}
	}

	e.lastGesture = display
	log.Printf("Gesture confirmed: %s (%s)", label, display)

	if e.onConfirmed != nil {
		go e.onConfirmed(label, display)
	}
}

// stepRemote feeds one frame through the motion-gated capture trigger.
// It returns true when a capture fired; the caller dispatches the
// recognizer outside the lock. Callers must hold e.mu.
func (e *Engine) stepRemote(frame *gocv.Mat, now time.Time) bool {
	if err := e.downsampler.Downsample(frame, e.sample[:]); err != nil {
		log.Printf("Error downsampling frame: %v", err)
		return false
	}

	state, fire := e.trigger.Observe(e.sample[:])
	e.state = string(state)

	if fire && e.config.Store != nil {
		err := e.config.Store.Events().Append(&store.Event{
			ID:        uuid.NewString(),
			Kind:      store.EventCapture,
			CreatedAt: now,
		})
		if err != nil {
			log.Printf("Failed to record capture: %v", err)
		}
	}

	return fire
}

// dispatchCapture encodes the full-resolution frame and hands it to the
// remote recognizer asynchronously. The frame loop never waits on the
// result; the trigger's in-flight guard prevents re-triggering until
// the call settles.
func (e *Engine) dispatchCapture(frame *gocv.Mat, gen uint64) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding capture: %v", err)
		e.mu.Lock()
		e.settleCapture(gen, "", err)
		e.mu.Unlock()
		return
	}

	image := make([]byte, buf.Len())
	copy(image, buf.GetBytes())
	buf.Close()

	e.mu.RLock()
	recognizer := e.recognizer
	req := recognize.Request{
		Image:    image,
		Scope:    e.scope,
		Language: e.language,
	}
	e.mu.RUnlock()

	if recognizer == nil {
		e.mu.Lock()
		e.settleCapture(gen, "", nil)
		e.mu.Unlock()
		return
	}

	log.Printf("Capture dispatched (%d bytes, scope=%s)", len(image), req.Scope)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recognize.DefaultTimeout)
		defer cancel()

		result, err := recognizer.Recognize(ctx, req)

		text := ""
		if result != nil {
			text = result.Text
		}

		e.mu.Lock()
		e.settleCapture(gen, text, err)
		e.mu.Unlock()
	}()
}

// settleCapture releases the trigger's in-flight guard and records the
// recognition outcome. Callers must hold e.mu. A stale generation means
// a reset already cleared the trigger while the capture was in flight,
// so the outcome is dropped.
func (e *Engine) settleCapture(gen uint64, text string, err error) {
	if e.generation != gen {
		return
	}
	e.trigger.Settle()
	e.state = string(e.trigger.State())

	if err != nil {
		log.Printf("Remote recognition failed: %v", err)
	} else if text != "" {
		e.lastResult = text
		log.Printf("Remote recognition result: %s", text)

		if e.config.Store != nil {
			storeErr := e.config.Store.Events().Append(&store.Event{
				ID:   uuid.NewString(),
				Kind: store.EventRecognition,
				Text: text,
			})
			if storeErr != nil {
				log.Printf("Failed to record recognition: %v", storeErr)
			}
		}
	}

	if e.onRecognition != nil {
		go e.onRecognition(text, err)
	}
}

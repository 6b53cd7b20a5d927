package bridge

import (
	"time"

	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
)

// Controller blends bridge input into an orbit camera and the scene's
// speed/density hooks. Both renderers share one of these per scene.
type Controller struct {
	poller  *Poller
	tracker *Tracker
	inc     *PinchBuffer
	dec     *PinchBuffer

	status Status
	last   Snapshot
	now    func() time.Time
}

// Hooks receive resolved pinch gestures. Nil hooks are skipped.
type Hooks struct {
	// SpeedStep is called with +1/-1 per double pinch.
	SpeedStep func(dir int)
	// DensityStep is called with +1/-1 per expired single pinch.
	DensityStep func(dir int)
}

func NewController(poller *Poller) *Controller {
	return &Controller{
		poller:  poller,
		tracker: NewTracker(),
		inc:     NewPinchBuffer(),
		dec:     NewPinchBuffer(),
		now:     time.Now,
	}
}

// Tick polls the control file once and, when live, applies the frame's
// delta to cam and queues gesture events. Manual input always remains
// active; the bridge only ever adds increments.
func (c *Controller) Tick(cam *orbit.Camera, hooks Hooks) Status {
	now := c.now()

	snap, status := c.poller.Poll()
	c.status = status
	c.last = snap

	if status != StatusLive {
		c.tracker.Reset()
	} else {
		if d, ok := c.tracker.Update(snap); ok {
			cam.Scale(d.ZoomRatio)
			cam.Rotate(d.YawDelta, d.PitchDelta)
			c.inc.Add(d.IncPinches, now)
			c.dec.Add(d.DecPinches, now)
		}
	}

	// Gesture buffers keep resolving even while waiting so a pinch
	// caught right before the hand left the frame still lands.
	if doubles, single := c.inc.Resolve(now); doubles > 0 || single {
		for i := 0; i < doubles; i++ {
			if hooks.SpeedStep != nil {
				hooks.SpeedStep(+1)
			}
		}
		if single && hooks.DensityStep != nil {
			hooks.DensityStep(+1)
		}
	}
	if doubles, single := c.dec.Resolve(now); doubles > 0 || single {
		for i := 0; i < doubles; i++ {
			if hooks.SpeedStep != nil {
				hooks.SpeedStep(-1)
			}
		}
		if single && hooks.DensityStep != nil {
			hooks.DensityStep(-1)
		}
	}

	return status
}

// StatusLine renders the current HUD status line.
func (c *Controller) StatusLine() string {
	return StatusLine(c.last, c.status, c.now())
}

// Snapshot returns the most recent parse, valid when status != waiting.
func (c *Controller) Snapshot() (Snapshot, Status) {
	return c.last, c.status
}

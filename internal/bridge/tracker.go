package bridge

import (
	"math"
	"time"
)

// Ratio clamps prevent a single frame of tracker noise from slamming
// the camera across its whole distance band.
const (
	minZoomRatio = 0.65
	maxZoomRatio = 1.55
	minZoom      = 0.05
)

// Delta is the incremental camera/simulation change derived from two
// consecutive fresh snapshots.
type Delta struct {
	ZoomRatio  float64 // divide camera distance by this
	YawDelta   float64 // radians
	PitchDelta float64 // radians
	IncPinches int
	DecPinches int
}

// Tracker converts absolute snapshot values into per-frame deltas.
// The first fresh snapshot after a gap only seeds the baselines, so a
// returning hand never causes a camera jump.
type Tracker struct {
	seeded bool
	prev   Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Reset drops the baseline; called whenever the bridge leaves
// StatusLive so stale data can never leak into a later delta.
func (t *Tracker) Reset() {
	t.seeded = false
}

// Update ingests a fresh snapshot. ok is false while seeding.
func (t *Tracker) Update(s Snapshot) (Delta, bool) {
	cur := s
	cur.Zoom = math.Max(minZoom, cur.Zoom)

	if !t.seeded {
		t.seeded = true
		t.prev = cur
		return Delta{ZoomRatio: 1.0}, false
	}

	d := Delta{
		ZoomRatio:  clamp(cur.Zoom/math.Max(minZoom, t.prev.Zoom), minZoomRatio, maxZoomRatio),
		YawDelta:   angleDeltaDeg(cur.RotationDeg, t.prev.RotationDeg) * math.Pi / 180,
		PitchDelta: (cur.PitchDeg - t.prev.PitchDeg) * math.Pi / 180,
	}

	// Counters only move forward; a counter that went backwards means
	// the producer restarted, so treat it as a reseed.
	if cur.NIncCount >= t.prev.NIncCount {
		d.IncPinches = cur.NIncCount - t.prev.NIncCount
	}
	if cur.NDecCount >= t.prev.NDecCount {
		d.DecPinches = cur.NDecCount - t.prev.NDecCount
	}

	t.prev = cur
	return d, true
}

// PinchBuffer accumulates pinch events and resolves them after
// PinchWindow: a pair within the window is a "double pinch", a single
// left over past its deadline resolves alone.
type PinchBuffer struct {
	pending  int
	deadline time.Time
	window   time.Duration
}

func NewPinchBuffer() *PinchBuffer {
	return &PinchBuffer{window: PinchWindow}
}

// Add buffers n new pinch events observed at now.
func (b *PinchBuffer) Add(n int, now time.Time) {
	if n <= 0 {
		return
	}
	b.pending += n
	b.deadline = now.Add(b.window)
}

// Resolve returns how many double pinches fired and whether an
// expired single fired. Doubles fire immediately; a lone single waits
// for its deadline in case a partner arrives.
func (b *PinchBuffer) Resolve(now time.Time) (doubles int, single bool) {
	if b.pending >= 2 {
		doubles = b.pending / 2
		b.pending %= 2
		if b.pending > 0 {
			b.deadline = now.Add(b.window)
		} else {
			b.deadline = time.Time{}
		}
	}

	if b.pending == 1 && !b.deadline.IsZero() && !now.Before(b.deadline) {
		single = true
		b.pending = 0
		b.deadline = time.Time{}
	}
	return doubles, single
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// angleDeltaDeg returns the signed shortest rotation from prev to cur.
func angleDeltaDeg(cur, prev float64) float64 {
	d := cur - prev
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

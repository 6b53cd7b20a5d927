package bridge

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseSnapshot(t *testing.T) {
	input := `zoom = 1.25
rotation_deg = 45.0
pitch_deg = -10.5
n_inc_count = 3
n_dec_count = 1
zoom_line_active = 1
label = Right
gesture = pinch
timestamp_ms = 1700000000000
`
	s, ok := parseSnapshot(strings.NewReader(input))
	if !ok {
		t.Fatal("expected valid snapshot")
	}
	if s.Zoom != 1.25 || s.RotationDeg != 45.0 || s.PitchDeg != -10.5 {
		t.Errorf("numeric fields mismatch: %+v", s)
	}
	if s.NIncCount != 3 || s.NDecCount != 1 {
		t.Errorf("counter fields mismatch: %+v", s)
	}
	if !s.ZoomLineActive || s.Label != "Right" || s.Gesture != "pinch" {
		t.Errorf("string fields mismatch: %+v", s)
	}
}

func TestParseSnapshotMalformedValuesKeepDefaults(t *testing.T) {
	input := `zoom = not-a-number
rotation_deg = 30
garbage line without equals
unknown_key = 9
timestamp_ms = 123456
`
	s, ok := parseSnapshot(strings.NewReader(input))
	if !ok {
		t.Fatal("expected valid snapshot")
	}
	if s.Zoom != 1.0 {
		t.Errorf("malformed zoom should keep default 1.0, got %f", s.Zoom)
	}
	if s.RotationDeg != 30 {
		t.Errorf("valid line after malformed one should still parse, got %f", s.RotationDeg)
	}
}

func TestParseSnapshotRequiresTimestamp(t *testing.T) {
	if _, ok := parseSnapshot(strings.NewReader("zoom = 2.0\n")); ok {
		t.Error("snapshot without timestamp_ms should be rejected")
	}
	if _, ok := parseSnapshot(strings.NewReader("timestamp_ms = 0\n")); ok {
		t.Error("snapshot with zero timestamp should be rejected")
	}
}

func TestTrackerSeedsWithoutDelta(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Update(Snapshot{Zoom: 2.0, RotationDeg: 90, TimestampMs: 1})
	if ok {
		t.Error("first update should only seed")
	}

	d, ok := tr.Update(Snapshot{Zoom: 2.0, RotationDeg: 100, TimestampMs: 2})
	if !ok {
		t.Fatal("second update should produce a delta")
	}
	if math.Abs(d.YawDelta-10*math.Pi/180) > 1e-12 {
		t.Errorf("expected 10 degree yaw delta, got %f rad", d.YawDelta)
	}
	if d.ZoomRatio != 1.0 {
		t.Errorf("unchanged zoom should give ratio 1.0, got %f", d.ZoomRatio)
	}
}

func TestTrackerClampsZoomRatio(t *testing.T) {
	tr := NewTracker()
	tr.Update(Snapshot{Zoom: 1.0, TimestampMs: 1})

	d, _ := tr.Update(Snapshot{Zoom: 100.0, TimestampMs: 2})
	if d.ZoomRatio != maxZoomRatio {
		t.Errorf("expected ratio clamped to %f, got %f", maxZoomRatio, d.ZoomRatio)
	}

	d, _ = tr.Update(Snapshot{Zoom: 0.01, TimestampMs: 3})
	if d.ZoomRatio != minZoomRatio {
		t.Errorf("expected ratio clamped to %f, got %f", minZoomRatio, d.ZoomRatio)
	}
}

func TestTrackerRotationWrapsAt180(t *testing.T) {
	tr := NewTracker()
	tr.Update(Snapshot{Zoom: 1, RotationDeg: 170, TimestampMs: 1})

	d, _ := tr.Update(Snapshot{Zoom: 1, RotationDeg: -170, TimestampMs: 2})
	if math.Abs(d.YawDelta-20*math.Pi/180) > 1e-12 {
		t.Errorf("wraparound should give +20 degrees, got %f rad", d.YawDelta)
	}
}

func TestTrackerIgnoresCounterRegression(t *testing.T) {
	tr := NewTracker()
	tr.Update(Snapshot{Zoom: 1, NIncCount: 5, TimestampMs: 1})

	d, _ := tr.Update(Snapshot{Zoom: 1, NIncCount: 2, TimestampMs: 2})
	if d.IncPinches != 0 {
		t.Errorf("counter regression should yield zero pinches, got %d", d.IncPinches)
	}

	d, _ = tr.Update(Snapshot{Zoom: 1, NIncCount: 4, TimestampMs: 3})
	if d.IncPinches != 2 {
		t.Errorf("expected 2 pinches after regression reseed, got %d", d.IncPinches)
	}
}

func TestTrackerResetReseeds(t *testing.T) {
	tr := NewTracker()
	tr.Update(Snapshot{Zoom: 1, RotationDeg: 0, TimestampMs: 1})
	tr.Reset()

	// After a reset the next snapshot must not produce a jump even if
	// the absolute values moved a lot while the bridge was dark.
	_, ok := tr.Update(Snapshot{Zoom: 3, RotationDeg: 179, TimestampMs: 2})
	if ok {
		t.Error("first update after reset should only seed")
	}
}

func TestPinchBufferDoubleFiresImmediately(t *testing.T) {
	b := NewPinchBuffer()
	now := time.Unix(100, 0)

	b.Add(2, now)
	doubles, single := b.Resolve(now)
	if doubles != 1 || single {
		t.Errorf("expected one double, got doubles=%d single=%v", doubles, single)
	}
}

func TestPinchBufferSingleWaitsForWindow(t *testing.T) {
	b := NewPinchBuffer()
	now := time.Unix(100, 0)

	b.Add(1, now)

	doubles, single := b.Resolve(now.Add(PinchWindow / 2))
	if doubles != 0 || single {
		t.Errorf("single should still be pending, got doubles=%d single=%v", doubles, single)
	}

	doubles, single = b.Resolve(now.Add(PinchWindow))
	if doubles != 0 || !single {
		t.Errorf("expected expired single, got doubles=%d single=%v", doubles, single)
	}

	// Buffer must be empty afterwards.
	doubles, single = b.Resolve(now.Add(2 * PinchWindow))
	if doubles != 0 || single {
		t.Error("buffer should be drained")
	}
}

func TestPinchBufferPairWithinWindow(t *testing.T) {
	b := NewPinchBuffer()
	now := time.Unix(100, 0)

	b.Add(1, now)
	b.Resolve(now)
	b.Add(1, now.Add(PinchWindow/2))

	doubles, single := b.Resolve(now.Add(PinchWindow / 2))
	if doubles != 1 || single {
		t.Errorf("pair inside window should be a double, got doubles=%d single=%v", doubles, single)
	}
}

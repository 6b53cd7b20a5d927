// Package bridge reads camera and gesture parameters from a small
// key=value text file written by an out-of-process hand-tracking
// script. The file is polled once per frame; a missing or stale file
// silently falls back to manual mouse/keyboard control.
package bridge

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// StaleAfter is the maximum snapshot age before the bridge
	// reports stale and stops driving the camera.
	StaleAfter = 1200 * time.Millisecond

	// PinchWindow is how long single pinches wait to pair up into a
	// double pinch before resolving on their own.
	PinchWindow = 650 * time.Millisecond
)

// DefaultPaths are tried in order; the first hit is cached. They
// mirror the producer's layout relative to the working directories the
// visualizations are usually launched from.
var DefaultPaths = []string{
	"vision/live_controls.txt",
	"../vision/live_controls.txt",
	"../../vision/live_controls.txt",
	"AstroPhysics/vision/live_controls.txt",
}

// Snapshot is one parse of the live-control file. Fields keep their
// zero/default values when the producer omits or mangles a line.
type Snapshot struct {
	Zoom           float64
	RotationDeg    float64
	PitchDeg       float64
	NIncCount      int
	NDecCount      int
	ZoomLineActive bool
	Label          string
	Gesture        string
	TimestampMs    int64
}

// Age of the snapshot relative to now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.TimestampMs))
}

// Status reports what the bridge is doing this frame.
type Status int

const (
	// StatusWaiting means no readable control file was found.
	StatusWaiting Status = iota
	// StatusStale means a snapshot exists but is too old to trust.
	StatusStale
	// StatusLive means the snapshot is fresh and drives the camera.
	StatusLive
)

func (s Status) String() string {
	switch s {
	case StatusStale:
		return "stale"
	case StatusLive:
		return "live"
	default:
		return "waiting"
	}
}

// parseSnapshot reads key = value lines. Unknown keys are ignored and
// malformed values leave the field at its default, matching the
// producer contract: a bad line never invalidates the rest of the
// file.
func parseSnapshot(r io.Reader) (Snapshot, bool) {
	s := Snapshot{Zoom: 1.0, Label: "Unknown", Gesture: "none"}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])

		switch key {
		case "zoom":
			if v, err := strconv.ParseFloat(val, 64); err == nil {
				s.Zoom = v
			}
		case "rotation_deg":
			if v, err := strconv.ParseFloat(val, 64); err == nil {
				s.RotationDeg = v
			}
		case "pitch_deg":
			if v, err := strconv.ParseFloat(val, 64); err == nil {
				s.PitchDeg = v
			}
		case "n_inc_count":
			if v, err := strconv.Atoi(val); err == nil {
				s.NIncCount = v
			}
		case "n_dec_count":
			if v, err := strconv.Atoi(val); err == nil {
				s.NDecCount = v
			}
		case "zoom_line_active":
			s.ZoomLineActive = val == "1" || strings.EqualFold(val, "true")
		case "label":
			s.Label = val
		case "gesture":
			s.Gesture = val
		case "timestamp_ms":
			if v, err := strconv.ParseInt(val, 10, 64); err == nil {
				s.TimestampMs = v
			}
		}
	}

	// A snapshot without a positive timestamp cannot be staleness
	// checked, so it is treated as absent.
	if s.TimestampMs <= 0 {
		return Snapshot{}, false
	}
	return s, true
}

// Poller locates and re-reads the control file once per frame.
type Poller struct {
	paths      []string
	cached     string
	staleAfter time.Duration
	now        func() time.Time
}

func NewPoller(paths []string) *Poller {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &Poller{paths: paths, staleAfter: StaleAfter, now: time.Now}
}

// SetStaleAfter overrides the staleness threshold (config file knob).
func (p *Poller) SetStaleAfter(d time.Duration) {
	if d > 0 {
		p.staleAfter = d
	}
}

// Poll returns the freshest parseable snapshot and its status. All
// failure modes degrade to StatusWaiting; Poll never returns an error
// because nothing here may stop the frame loop.
func (p *Poller) Poll() (Snapshot, Status) {
	if p.cached != "" {
		if s, ok := p.tryPath(p.cached); ok {
			return p.classify(s)
		}
	}

	for _, path := range p.paths {
		if s, ok := p.tryPath(path); ok {
			p.cached = path
			return p.classify(s)
		}
	}
	return Snapshot{}, StatusWaiting
}

// Path returns the cached control file location, if one was found.
func (p *Poller) Path() string {
	return p.cached
}

func (p *Poller) tryPath(path string) (Snapshot, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, false
	}
	defer f.Close()
	return parseSnapshot(f)
}

func (p *Poller) classify(s Snapshot) (Snapshot, Status) {
	if s.Age(p.now()) > p.staleAfter {
		return s, StatusStale
	}
	return s, StatusLive
}

// StatusLine renders the HUD line shown under the scene title.
func StatusLine(s Snapshot, st Status, now time.Time) string {
	switch st {
	case StatusLive:
		return fmt.Sprintf("bridge: live  hand=%s  gesture=%s  age=%dms",
			s.Label, s.Gesture, s.Age(now).Milliseconds())
	case StatusStale:
		return "bridge: stale"
	default:
		return "bridge: waiting for vision/live_controls.txt"
	}
}

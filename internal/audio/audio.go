// Package audio sonifies a scene. Scenes that implement the Sonifier
// interface publish a target frequency; the synth glides toward it so
// Doppler shifts are heard as a smooth pitch bend rather than steps.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// glideRate controls how fast the oscillator chases the target
	// frequency, in fraction-per-sample terms.
	glideRate = 0.0008
)

type Synth struct {
	stream *portaudio.Stream

	mu         sync.Mutex
	targetFreq float64
	volume     float64

	freq        float64
	phase       float64
	filterState [2]float64
	active      bool
}

func NewSynth() *Synth {
	return &Synth{
		targetFreq: 220,
		freq:       220,
		volume:     0.22,
	}
}

// Start opens the default output stream. Callers treat an error as
// "run silent": the scene keeps working without sound.
func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	s.stream = stream
	s.active = true
	return nil
}

func (s *Synth) Stop() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
		s.stream = nil
		portaudio.Terminate()
	}
	s.active = false
}

func (s *Synth) Active() bool { return s.active }

// SetFrequency publishes the next target tone in Hz. Out-of-band
// values are clamped to keep the output audible.
func (s *Synth) SetFrequency(hz float64) {
	if hz < 40 {
		hz = 40
	}
	if hz > 4000 {
		hz = 4000
	}
	s.mu.Lock()
	s.targetFreq = hz
	s.mu.Unlock()
}

// Triangle wave: soft, flute-like, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) process(out [][]float32) {
	s.mu.Lock()
	target := s.targetFreq
	vol := s.volume
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)

	for i := 0; i < len(out[0]); i++ {
		s.freq += (target - s.freq) * glideRate
		s.phase += s.freq * dt

		// Slight detune between channels widens the image.
		oscL := triangle(s.phase * 0.999)
		oscR := triangle(s.phase * 1.001)

		// The filter rounds the triangle into a near-sine and tracks
		// the pitch so brightness stays constant.
		cutoff := s.freq * 2.5
		var l, r float64
		l, s.filterState[0] = lpf(oscL, cutoff, dt, s.filterState[0])
		r, s.filterState[1] = lpf(oscR, cutoff, dt, s.filterState[1])

		out[0][i] = float32(l * vol)
		out[1][i] = float32(r * vol)
	}
}

package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a sampled
// series. The series is Hann-windowed first so finite-record leakage
// does not swamp nearby bins.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	buf := make([]float64, len(data))
	copy(buf, data)
	window.Apply(buf, window.Hann)

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC bin in Hz for a
// series sampled every dt seconds.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(len(data)) * dt)
}

// Package analysis provides offline tools for recorded metric series
// and for the underlying dynamical systems:
//
//   - [EnergyDrift]: relative drift of a conserved quantity over a run
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [PowerSpectrum]: windowed FFT magnitude of a metric channel
//   - [DominantFrequency]: the spectrum's strongest bin in Hz
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis

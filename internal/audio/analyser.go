package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyser settings, matching the usual browser analyser defaults.
const (
	smoothing = 0.8
	minDB     = -100.0
	maxDB     = -30.0
)

// Analyser turns blocks of FFTSize mono samples into Bins byte magnitudes:
// Blackman window, magnitude |X|/N smoothed over time, mapped from
// minDB..maxDB onto 0..255.
type Analyser struct {
	fft      *fourier.FFT
	window   [FFTSize]float64
	in       []float64
	coeff    []complex128
	smoothed [Bins]float64
}

// NewAnalyser returns an analyser with no history.
func NewAnalyser() *Analyser {
	a := &Analyser{
		fft:   fourier.NewFFT(FFTSize),
		in:    make([]float64, FFTSize),
		coeff: make([]complex128, FFTSize/2+1),
	}
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / FFTSize
		a.window[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return a
}

// Analyse reads the last FFTSize samples and writes Bins values into dst.
func (a *Analyser) Analyse(samples []float64, dst []byte) {
	off := max(len(samples)-FFTSize, 0)
	clear(a.in)
	for i, s := range samples[off:] {
		a.in[i] = s * a.window[i]
	}

	a.coeff = a.fft.Coefficients(a.coeff, a.in)

	for k := 0; k < Bins && k < len(dst); k++ {
		mag := cmplx.Abs(a.coeff[k]) / FFTSize
		a.smoothed[k] = smoothing*a.smoothed[k] + (1-smoothing)*mag
		dst[k] = toByte(a.smoothed[k])
	}
}

// Reset forgets the smoothing history.
func (a *Analyser) Reset() {
	a.smoothed = [Bins]float64{}
}

func toByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := (db - minDB) / (maxDB - minDB) * 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}

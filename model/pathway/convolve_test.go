package pathway

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvolveFFTMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	n := 1500
	input := make([]float64, n)
	kernel := make([]float64, n)
	for i := range input {
		input[i] = rng.Float64()
		kernel[i] = rng.Float64() / float64(n)
	}

	direct := convolveDirect(input, kernel, n)
	fft := convolveFFT(input, kernel, n)

	for i := range direct {
		assert.InDelta(t, direct[i], fft[i], 1e-8, "index %d", i)
	}
}

func TestConvolveTruncatesAtHorizon(t *testing.T) {
	out := convolve([]float64{1, 1, 1}, []float64{0.5, 0.3, 0.2}, 2)
	assert.Equal(t, []float64{0.5, 0.8}, out)
}

func TestConvolveDegenerateInputs(t *testing.T) {
	assert.Empty(t, convolve(nil, []float64{1}, 0))
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, convolve([]float64{1}, nil, 5))
	assert.Equal(t, []float64{0, 0}, convolve(nil, []float64{1}, 2))
}

func BenchmarkConvolveDecadeHorizon(b *testing.B) {
	horizon := 20 * 365
	input := constantSeries(horizon, 5.83)
	kernel := DecayKernel(0.17, horizon)

	b.ResetTimer()
	for b.Loop() {
		convolve(input, kernel, horizon)
	}
}

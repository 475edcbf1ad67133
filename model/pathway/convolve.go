package pathway

import (
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fftKernelThreshold is the kernel length above which FFT convolution beats
// direct summation. The landfill decay kernel spans the whole multi-decade
// horizon, so direct O(D²) summation there is a performance hazard; the
// short spreading profiles stay on the direct path.
const fftKernelThreshold = 128

// convolve computes the first n points of the discrete convolution of input
// with kernel.
func convolve(input, kernel []float64, n int) []float64 {
	if n <= 0 || len(input) == 0 || len(kernel) == 0 {
		return make([]float64, max(n, 0))
	}
	if len(kernel) > fftKernelThreshold && n > fftKernelThreshold {
		return convolveFFT(input, kernel, n)
	}
	return convolveDirect(input, kernel, n)
}

func convolveDirect(input, kernel []float64, n int) []float64 {
	out := make([]float64, n)
	for entry, batch := range input {
		if entry >= n {
			break
		}
		// batch offsets past the horizon are dropped
		limit := min(len(kernel), n-entry)
		for offset := 0; offset < limit; offset++ {
			out[entry+offset] += batch * kernel[offset]
		}
	}
	return out
}

func convolveFFT(input, kernel []float64, n int) []float64 {
	m := nextPow2(len(input) + len(kernel) - 1)

	a := make([]float64, m)
	copy(a, input)
	b := make([]float64, m)
	copy(b, kernel)

	fft := fourier.NewFFT(m)
	ca := fft.Coefficients(nil, a)
	cb := fft.Coefficients(nil, b)
	for i := range ca {
		ca[i] *= cb[i]
	}

	full := fft.Sequence(nil, ca)
	out := make([]float64, n)
	for i := range out {
		if i >= len(full) {
			break
		}
		// Sequence is unnormalized; rescale and squash the roundoff
		// negatives an all-positive convolution cannot produce.
		out[i] = max(full[i]/float64(m), 0)
	}
	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

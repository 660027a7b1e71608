package analysis

import (
	"math"
	"math/cmplx"
)

// fft is a radix-2 Cooley-Tukey transform. Callers guarantee a
// power-of-two length.
func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude spectrum of a scalar series with
// the mean removed. The series is truncated to the largest power-of-two
// prefix; the result covers frequencies up to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	if n < 2 {
		return nil
	}

	mean := Mean(data[:n])
	centered := make([]float64, n)
	for i := 0; i < n; i++ {
		centered[i] = data[i] - mean
	}

	spectrum := fft(centered)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i]) / float64(n)
	}
	return ps
}

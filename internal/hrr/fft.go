package hrr

import (
	"math"
	"math/cmplx"
)

// The discrete Fourier transforms backing Bind. Power-of-two lengths use an
// in-place iterative radix-2 FFT; every other length goes through the
// Bluestein chirp-z reduction, which re-expresses an arbitrary-length DFT as
// a power-of-two circular convolution. Symbol dimensions in practice (100,
// 320, ...) are rarely powers of two, so Bluestein is the common path.

// dft returns the forward DFT of x for any length.
func dft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	if isPow2(n) {
		out := make([]complex128, n)
		copy(out, x)
		fftRadix2(out, false)
		return out
	}
	return bluestein(x)
}

// idft returns the inverse DFT of x, including the 1/n scaling.
func idft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	if isPow2(n) {
		out := make([]complex128, n)
		copy(out, x)
		fftRadix2(out, true)
		return out
	}
	// Inverse via conjugation: idft(x) = conj(dft(conj(x))) / n.
	tmp := make([]complex128, n)
	for i := range x {
		tmp[i] = cmplx.Conj(x[i])
	}
	fwd := bluestein(tmp)
	scale := complex(float64(n), 0)
	for i := range fwd {
		fwd[i] = cmplx.Conj(fwd[i]) / scale
	}
	return fwd
}

// fftRadix2 transforms a in place. len(a) must be a power of two.
func fftRadix2(a []complex128, invert bool) {
	n := len(a)

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		ang := 2 * math.Pi / float64(length)
		if !invert {
			ang = -ang
		}
		wl := cmplx.Rect(1, ang)
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			half := length / 2
			for j := 0; j < half; j++ {
				u := a[i+j]
				v := a[i+j+half] * w
				a[i+j] = u + v
				a[i+j+half] = u - v
				w *= wl
			}
		}
	}

	if invert {
		scale := complex(float64(n), 0)
		for i := range a {
			a[i] /= scale
		}
	}
}

// bluestein computes the forward DFT of arbitrary length n as a circular
// convolution of length m = nextPow2(2n+1).
func bluestein(x []complex128) []complex128 {
	n := len(x)
	m := nextPow2(2*n + 1)

	// chirp[k] = exp(-i*pi*k^2/n). k^2 is reduced mod 2n to keep the angle
	// exact for large k.
	chirp := make([]complex128, n)
	for k := 0; k < n; k++ {
		j := (k * k) % (2 * n)
		chirp[k] = cmplx.Rect(1, -math.Pi*float64(j)/float64(n))
	}

	a := make([]complex128, m)
	for k := 0; k < n; k++ {
		a[k] = x[k] * chirp[k]
	}

	b := make([]complex128, m)
	b[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		b[k] = c
		b[m-k] = c
	}

	fftRadix2(a, false)
	fftRadix2(b, false)
	for i := range a {
		a[i] *= b[i]
	}
	fftRadix2(a, true)

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		out[k] = a[k] * chirp[k]
	}
	return out
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPow2(n int) int {
	m := 1
	for m < n {
		m <<= 1
	}
	return m
}

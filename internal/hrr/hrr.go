// Package hrr implements Holographic Reduced Representations, the
// vector-symbolic algebra used as the numeric kernel of the engine.
//
// Vectors are fixed-length real-valued symbols. Binding fuses two vectors
// through circular convolution and is approximately invertible; bundling
// superposes two vectors by element-wise addition. All operations are pure:
// they never mutate their inputs and always allocate a fresh result.
package hrr

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Vector is a fixed-length sequence of float64 components.
type Vector []float64

// DimensionError reports an operation over vectors of unequal length.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Want, e.Got)
}

// Normal draws size independent samples from a normal distribution with mean
// 0 and standard deviation sd, then rescales the result to unit Euclidean
// norm. A non-positive sd selects the canonical default 1/sqrt(size).
//
// The caller owns the RNG; deterministic runs seed it once at graph
// construction time.
func Normal(rng *rand.Rand, size int, sd float64) Vector {
	if sd <= 0 {
		sd = 1.0 / math.Sqrt(float64(size))
	}
	v := make(Vector, size)
	for i := range v {
		v[i] = rng.NormFloat64() * sd
	}
	if n := Norm(v); n != 0 {
		for i := range v {
			v[i] /= n
		}
	}
	return v
}

// Zeros returns the all-zero vector of the given dimension.
func Zeros(size int) Vector {
	return make(Vector, size)
}

// Bind computes the circular convolution of x and y: the element-wise
// product of their discrete Fourier transforms, inverse-transformed, keeping
// the real part.
func Bind(x, y Vector) (Vector, error) {
	if len(x) != len(y) {
		return nil, &DimensionError{Want: len(x), Got: len(y)}
	}
	fx := dft(toComplex(x))
	fy := dft(toComplex(y))
	for i := range fx {
		fx[i] *= fy[i]
	}
	prod := idft(fx)
	out := make(Vector, len(x))
	for i := range out {
		out[i] = real(prod[i])
	}
	return out, nil
}

// Bundle computes the element-wise sum x + y (superposition).
func Bundle(x, y Vector) (Vector, error) {
	if len(x) != len(y) {
		return nil, &DimensionError{Want: len(x), Got: len(y)}
	}
	out := make(Vector, len(x))
	for i := range out {
		out[i] = x[i] + y[i]
	}
	return out, nil
}

// Inv returns the approximate multiplicative inverse of x under Bind:
// index 0 stays fixed, indices 1..n-1 are reversed.
func Inv(x Vector) Vector {
	n := len(x)
	out := make(Vector, n)
	if n == 0 {
		return out
	}
	out[0] = x[0]
	for i := 1; i < n; i++ {
		out[i] = x[n-i]
	}
	return out
}

// Unbind approximately recovers the component bound with y from x,
// computed as Bind(x, Inv(y)).
func Unbind(x, y Vector) (Vector, error) {
	if len(x) != len(y) {
		return nil, &DimensionError{Want: len(x), Got: len(y)}
	}
	return Bind(x, Inv(y))
}

// Similarity is the normalized dot product dot(x, y) / len(x). This is not a
// cosine similarity: there is no normalization by magnitude, so the result is
// not bounded to [-1, 1]. Identical unit-norm vectors score roughly 1/len(x).
func Similarity(x, y Vector) (float64, error) {
	if len(x) != len(y) {
		return 0, &DimensionError{Want: len(x), Got: len(y)}
	}
	return Dot(x, y) / float64(len(x)), nil
}

// Dot returns the dot product of x and y. Lengths must already match.
func Dot(x, y Vector) float64 {
	var acc float64
	for i := range x {
		acc += x[i] * y[i]
	}
	return acc
}

// Norm returns the Euclidean norm of v.
func Norm(v Vector) float64 {
	return math.Sqrt(Dot(v, v))
}

// Clone returns an independent copy of v.
func Clone(v Vector) Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

func toComplex(v Vector) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}

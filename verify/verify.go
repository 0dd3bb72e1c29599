/*
Package verify checks element models and elements against central finite differences and
checks the consistency of their declared Jacobian patterns.

Each check returns a Result holding the largest absolute difference between the analytic and
finite-difference values and that difference relative to the largest finite-difference
magnitude.
*/
package verify

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

var ErrPattern = errors.New("verify: inconsistent Jacobian pattern")

// DefaultStep is the central difference step used when a caller passes zero
const DefaultStep = 1.e-6

type Result struct {
	Name           string
	MaxErr, MaxRel float64
	Index          int // position of MaxRel in the compared vector
}

func (r Result) Pass(relTol float64) bool {
	return r.MaxRel <= relTol && !math.IsNaN(r.MaxErr)
}

func (r Result) String() string {
	return fmt.Sprintf("%-36s max err = %10.3e  rel = %10.3e  at %d", r.Name, r.MaxErr, r.MaxRel, r.Index)
}

/*
compare evaluates analytic against reference. The relative error of each entry is taken
against its own magnitude, floored at 1e-6 of the reference norm so that entries that
should vanish are not divided by roundoff.
*/
func compare(name string, analytic, reference []float64) (r Result) {
	var (
		floor = 1.e-6
	)
	r.Name = name
	if len(analytic) == 0 {
		return
	}
	r.MaxErr = floats.Distance(analytic, reference, math.Inf(1))
	scale := floor * floats.Norm(reference, math.Inf(1))
	if scale < 1.e-12 {
		scale = 1.e-12
	}
	for i := range analytic {
		err := math.Abs(analytic[i] - reference[i])
		rel := err / math.Max(math.Abs(reference[i]), scale)
		if rel > r.MaxRel || math.IsNaN(rel) {
			r.MaxRel, r.Index = rel, i
		}
	}
	return
}

// centralDiff returns (f(x + h e_k) - f(x - h e_k)) / 2h for a scalar function of x[k]
func centralDiff(x []float64, k int, h float64, f func() float64) float64 {
	x0 := x[k]
	x[k] = x0 + h
	fp := f()
	x[k] = x0 - h
	fm := f()
	x[k] = x0
	return (fp - fm) / (2 * h)
}

// centralDiffVec returns the central difference of a vector function of x[k] into d
func centralDiffVec(x []float64, k int, h float64, f func(out []float64), d []float64) {
	var (
		fp = make([]float64, len(d))
		fm = make([]float64, len(d))
	)
	x0 := x[k]
	x[k] = x0 + h
	f(fp)
	x[k] = x0 - h
	f(fm)
	x[k] = x0
	floats.SubTo(d, fp, fm)
	floats.Scale(1/(2*h), d)
}

func step(h float64) float64 {
	if h == 0 {
		return DefaultStep
	}
	return h
}

// RandomVector returns n uniform values in [-scale, scale)
func RandomVector(rng *rand.Rand, n int, scale float64) (v []float64) {
	v = make([]float64, n)
	for i := range v {
		v[i] = scale * (2*rng.Float64() - 1)
	}
	return
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return floats.Dot(a[:n], b[:n])
}

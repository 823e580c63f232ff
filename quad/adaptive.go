// Package quad integrates real and complex valued functions over finite
// intervals with globally adaptive quadrature.
//
// The adaptive scheme follows QUADPACK's QAG: the interval with the largest
// error estimate is bisected until the summed error meets the tolerance or the
// subinterval limit is reached. Complex integrands are split into their real
// and imaginary parts, which are integrated independently so that each part
// keeps its own error estimate and convergence status.
//
// Running out of subintervals is not an error. The best estimate is returned
// together with the achieved error and Converged set to false.
package quad

import (
	"container/heap"
	"fmt"
	"math"
)

// Defaults match the ones used by SciPy's quad.
const (
	DefaultAbsTol = 1.49e-8
	DefaultRelTol = 1.49e-8
	DefaultLimit  = 50
)

// Options controls an adaptive integration.
type Options struct {
	AbsTol float64 // absolute error target
	RelTol float64 // error target relative to |integral|
	Limit  int     // maximum number of subintervals; 0 selects DefaultLimit
	Rule   Rule    // nil selects Kronrod21
}

// DefaultOptions returns the SciPy-like defaults with the 21-point Kronrod rule.
func DefaultOptions() Options {
	return Options{
		AbsTol: DefaultAbsTol,
		RelTol: DefaultRelTol,
		Limit:  DefaultLimit,
		Rule:   Kronrod21{},
	}
}

// Validate reports whether the options can be used for an integration.
func (o Options) Validate() error {
	if math.IsNaN(o.AbsTol) || math.IsNaN(o.RelTol) || o.AbsTol < 0 || o.RelTol < 0 {
		return fmt.Errorf("%w: abs=%g rel=%g", ErrBadTolerance, o.AbsTol, o.RelTol)
	}
	if o.AbsTol == 0 && o.RelTol == 0 {
		return fmt.Errorf("%w: abs and rel are both zero", ErrBadTolerance)
	}
	if o.Limit < 0 {
		return ErrBadLimit
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Rule == nil {
		o.Rule = Kronrod21{}
	}
	return o
}

// tolerance is the error target for an integral of the given magnitude.
func (o Options) tolerance(value float64) float64 {
	return math.Max(o.AbsTol, o.RelTol*math.Abs(value))
}

// RealResult is the outcome of integrating a real valued function.
type RealResult struct {
	Value     float64
	AbsErr    float64
	Evals     int
	Intervals int
	Converged bool
}

type segment struct {
	a, b   float64
	value  float64
	abserr float64
}

// segmentHeap is a max-heap on the error estimate.
type segmentHeap []segment

func (h segmentHeap) Len() int           { return len(h) }
func (h segmentHeap) Less(i, j int) bool { return h[i].abserr > h[j].abserr }
func (h segmentHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *segmentHeap) Push(x any)        { *h = append(*h, x.(segment)) }
func (h *segmentHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	*h = old[:n-1]
	return s
}

func (h segmentHeap) totals() (value, abserr float64) {
	for _, s := range h {
		value += s.value
		abserr += s.abserr
	}
	return value, abserr
}

// Integrate computes the integral of f over [a, b].
//
// The returned error is nil whenever the arguments are valid, including when
// the tolerance could not be met; check RealResult.Converged for that.
func Integrate(f func(float64) float64, a, b float64, opts Options) (RealResult, error) {
	if err := checkInterval(a, b); err != nil {
		return RealResult{}, err
	}
	if err := opts.Validate(); err != nil {
		return RealResult{}, err
	}
	return integrate(f, a, b, opts.withDefaults()), nil
}

func checkInterval(a, b float64) error {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || !(a < b) {
		return fmt.Errorf("%w: [%g, %g]", ErrBadInterval, a, b)
	}
	return nil
}

func integrate(f func(float64) float64, a, b float64, opts Options) RealResult {
	value, abserr, evals := opts.Rule.Estimate(f, a, b)
	h := &segmentHeap{{a: a, b: b, value: value, abserr: abserr}}

	for abserr > opts.tolerance(value) && h.Len() < opts.Limit {
		worst := heap.Pop(h).(segment)
		mid := 0.5 * (worst.a + worst.b)
		if tooNarrow(worst.a, mid, worst.b) {
			heap.Push(h, worst)
			break
		}

		v1, e1, n1 := opts.Rule.Estimate(f, worst.a, mid)
		v2, e2, n2 := opts.Rule.Estimate(f, mid, worst.b)
		evals += n1 + n2
		heap.Push(h, segment{a: worst.a, b: mid, value: v1, abserr: e1})
		heap.Push(h, segment{a: mid, b: worst.b, value: v2, abserr: e2})

		value, abserr = h.totals()
	}

	return RealResult{
		Value:     value,
		AbsErr:    abserr,
		Evals:     evals,
		Intervals: h.Len(),
		Converged: abserr <= opts.tolerance(value),
	}
}

// tooNarrow reports whether bisecting [a, b] at mid no longer produces
// distinguishable subintervals.
func tooNarrow(a, mid, b float64) bool {
	if mid <= a || mid >= b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return b-a <= 1000*epmach*scale
}

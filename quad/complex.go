package quad

import "math"

// Result is the outcome of integrating a complex valued function. The real
// and imaginary parts carry independent error estimates.
type Result struct {
	Value         complex128
	RealErr       float64
	ImagErr       float64
	RealConverged bool
	ImagConverged bool
	Evals         int
}

// Converged reports whether both parts met their tolerance.
func (r Result) Converged() bool {
	return r.RealConverged && r.ImagConverged
}

// IntegrateComplex computes the integral of g over [a, b] by integrating
// Re g and Im g separately with the adaptive rule and recombining them.
func IntegrateComplex(g func(float64) complex128, a, b float64, opts Options) (Result, error) {
	if err := checkInterval(a, b); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	opts = opts.withDefaults()

	re := integrate(func(t float64) float64 { return real(g(t)) }, a, b, opts)
	im := integrate(func(t float64) float64 { return imag(g(t)) }, a, b, opts)
	return combine(re, im), nil
}

func combine(re, im RealResult) Result {
	return Result{
		Value:         complex(re.Value, im.Value),
		RealErr:       re.AbsErr,
		ImagErr:       im.AbsErr,
		RealConverged: re.Converged,
		ImagConverged: im.Converged,
		Evals:         re.Evals + im.Evals,
	}
}

// Integrate2D computes the iterated integral
//
//	∫_a^b du ∫_c^d dv g(u, v)
//
// The inner integral is a complex adaptive integration for every outer node;
// the outer integral is split into real and imaginary parts. Inner results are
// cached per outer node so both outer passes share them. The inner error,
// scaled by the outer interval length, is added to the outer error, and any
// inner convergence failure marks the corresponding part as not converged.
func Integrate2D(g func(u, v float64) complex128, a, b, c, d float64, opts Options) (Result, error) {
	if err := checkInterval(a, b); err != nil {
		return Result{}, err
	}
	if err := checkInterval(c, d); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	opts = opts.withDefaults()

	var (
		cache   = make(map[float64]Result)
		innerRe float64
		innerIm float64
		reOK    = true
		imOK    = true
		evals   int
	)
	inner := func(u float64) complex128 {
		if r, ok := cache[u]; ok {
			return r.Value
		}
		re := integrate(func(v float64) float64 { return real(g(u, v)) }, c, d, opts)
		im := integrate(func(v float64) float64 { return imag(g(u, v)) }, c, d, opts)
		r := combine(re, im)
		cache[u] = r
		evals += r.Evals
		innerRe = math.Max(innerRe, r.RealErr)
		innerIm = math.Max(innerIm, r.ImagErr)
		reOK = reOK && r.RealConverged
		imOK = imOK && r.ImagConverged
		return r.Value
	}

	re := integrate(func(u float64) float64 { return real(inner(u)) }, a, b, opts)
	im := integrate(func(u float64) float64 { return imag(inner(u)) }, a, b, opts)

	res := combine(re, im)
	res.RealErr += (b - a) * innerRe
	res.ImagErr += (b - a) * innerIm
	res.RealConverged = res.RealConverged && reOK
	res.ImagConverged = res.ImagConverged && imOK
	res.Evals = evals
	return res, nil
}

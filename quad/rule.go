package quad

import (
	"math"

	gquad "gonum.org/v1/gonum/integrate/quad"
)

// Rule estimates the integral of f over [a, b] together with an error bound.
// Implementations must be safe for concurrent use.
type Rule interface {
	Estimate(f func(float64) float64, a, b float64) (value, abserr float64, evals int)
}

// Kronrod21 is the 21-point Gauss–Kronrod rule with its embedded 10-point
// Gauss rule, as used by QUADPACK's QK21.
type Kronrod21 struct{}

// Abscissae of the 21-point Kronrod rule on [-1, 1]. Odd indices are the
// 10-point Gauss abscissae; the last entry is the centre.
var xgk21 = [11]float64{
	0.995657163025808080735527280689003,
	0.973906528517171720077964012084452,
	0.930157491355708226001207180059508,
	0.865063366688984510732096688423493,
	0.780817726586416897063717578345042,
	0.679409568299024406234327365114874,
	0.562757134668604683339000099272694,
	0.433395394129247190799265943165784,
	0.294392862701460198131126603103866,
	0.148874338981631210884826001129720,
	0,
}

var wgk21 = [11]float64{
	0.011694638867371874278064396062192,
	0.032558162307964727478818972459390,
	0.054755896574351996031381300244580,
	0.075039674810919952767043140916190,
	0.093125454583697605535065465083366,
	0.109387158802297641899210590325805,
	0.123491976262065851077208745428911,
	0.134709217311473325928054001771707,
	0.142775938577060080797094273138717,
	0.147739104901338491374841515972068,
	0.149445554002916905664936468389821,
}

// Weights of the 10-point Gauss rule, matching xgk21[1], xgk21[3], ...
var wg10 = [5]float64{
	0.066671344308688137593568809893332,
	0.149451349150580593145776339657697,
	0.219086362515982043995534934228163,
	0.269266719309996355091226921569469,
	0.295524224714752870173892994651338,
}

const (
	epmach = 2.220446049250313e-16
	uflow  = 2.2250738585072014e-308
)

// Estimate applies the rule and scales the Kronrod–Gauss difference the way
// QUADPACK does, including the round-off floor.
func (Kronrod21) Estimate(f func(float64) float64, a, b float64) (float64, float64, int) {
	centr := 0.5 * (a + b)
	hlgth := 0.5 * (b - a)
	dhlgth := math.Abs(hlgth)

	var fv1, fv2 [10]float64

	fc := f(centr)
	resg := 0.0
	resk := wgk21[10] * fc
	resabs := math.Abs(resk)

	for j := 0; j < 5; j++ {
		jtw := 2*j + 1
		absc := hlgth * xgk21[jtw]
		fval1 := f(centr - absc)
		fval2 := f(centr + absc)
		fv1[jtw], fv2[jtw] = fval1, fval2
		fsum := fval1 + fval2
		resg += wg10[j] * fsum
		resk += wgk21[jtw] * fsum
		resabs += wgk21[jtw] * (math.Abs(fval1) + math.Abs(fval2))
	}
	for j := 0; j < 5; j++ {
		jtwm1 := 2 * j
		absc := hlgth * xgk21[jtwm1]
		fval1 := f(centr - absc)
		fval2 := f(centr + absc)
		fv1[jtwm1], fv2[jtwm1] = fval1, fval2
		fsum := fval1 + fval2
		resk += wgk21[jtwm1] * fsum
		resabs += wgk21[jtwm1] * (math.Abs(fval1) + math.Abs(fval2))
	}

	reskh := 0.5 * resk
	resasc := wgk21[10] * math.Abs(fc-reskh)
	for j := 0; j < 10; j++ {
		resasc += wgk21[j] * (math.Abs(fv1[j]-reskh) + math.Abs(fv2[j]-reskh))
	}

	result := resk * hlgth
	resabs *= dhlgth
	resasc *= dhlgth
	abserr := math.Abs((resk - resg) * hlgth)
	if resasc != 0 && abserr != 0 {
		abserr = resasc * math.Min(1, math.Pow(200*abserr/resasc, 1.5))
	}
	if resabs > uflow/(50*epmach) {
		abserr = math.Max(epmach*50*resabs, abserr)
	}
	return result, abserr, 21
}

// LegendrePair estimates the integral with an (N+1)-point Gauss–Legendre rule
// and takes the difference to the N-point rule as the error bound. The nodes
// come from gonum's Legendre rule and are computed once.
type LegendrePair struct {
	lowX, lowW   []float64
	highX, highW []float64
}

// NewLegendrePair returns a rule pair of orders n and n+1. n must be at least 1.
func NewLegendrePair(n int) *LegendrePair {
	if n < 1 {
		n = 1
	}
	p := &LegendrePair{
		lowX:  make([]float64, n),
		lowW:  make([]float64, n),
		highX: make([]float64, n+1),
		highW: make([]float64, n+1),
	}
	var rule gquad.Legendre
	rule.FixedLocations(p.lowX, p.lowW, -1, 1)
	rule.FixedLocations(p.highX, p.highW, -1, 1)
	return p
}

// Estimate implements Rule.
func (p *LegendrePair) Estimate(f func(float64) float64, a, b float64) (float64, float64, int) {
	centr := 0.5 * (a + b)
	hlgth := 0.5 * (b - a)

	low := 0.0
	for i, x := range p.lowX {
		low += p.lowW[i] * f(centr+hlgth*x)
	}
	high := 0.0
	for i, x := range p.highX {
		high += p.highW[i] * f(centr+hlgth*x)
	}
	low *= hlgth
	high *= hlgth
	return high, math.Abs(high - low), len(p.lowX) + len(p.highX)
}

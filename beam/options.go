package beam

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/bob-anderson-ok/optbeam/quad"
)

// DefaultTolerance is the absolute error target of each part of a field
// evaluation. The integrand is oscillatory and the field only scales a source
// amplitude, so machine precision is neither needed nor cheap.
const DefaultTolerance = 1e-8

// DefaultLimit is the subinterval budget per real or imaginary part.
const DefaultLimit = 200

// Warning describes the first evaluation whose error estimate exceeded the
// tolerance.
type Warning struct {
	X, Y, Z   float64
	RealErr   float64
	ImagErr   float64
	Tolerance float64
}

func (w Warning) String() string {
	return fmt.Sprintf("integration did not converge at (%g, %g, %g): real err %.3g, imag err %.3g, tolerance %.3g",
		w.X, w.Y, w.Z, w.RealErr, w.ImagErr, w.Tolerance)
}

type settings struct {
	tolerance float64
	limit     int
	rule      quad.Rule
	offset    float64
	logger    *slog.Logger
	onWarn    func(Warning)
}

// Option configures a field.
type Option func(*settings)

// WithTolerance sets the absolute error target of the real and imaginary
// parts of an evaluation.
func WithTolerance(tol float64) Option {
	return func(s *settings) { s.tolerance = tol }
}

// WithLimit sets the subinterval budget of each adaptive integration.
func WithLimit(n int) Option {
	return func(s *settings) { s.limit = n }
}

// WithRule replaces the 21-point Kronrod rule.
func WithRule(r quad.Rule) Option {
	return func(s *settings) { s.rule = r }
}

// WithWaistOffset shifts every evaluation by x0 along the propagation axis,
// so At(x, y) is the field at distance x + x0 from the waist.
func WithWaistOffset(x0 float64) Option {
	return func(s *settings) { s.offset = x0 }
}

// WithLogger sets the logger used for the one-time diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithWarningHandler registers a callback that receives the one-time
// convergence warning in addition to the log record.
func WithWarningHandler(fn func(Warning)) Option {
	return func(s *settings) { s.onWarn = fn }
}

func newSettings(opts []Option) (settings, error) {
	s := settings{
		tolerance: DefaultTolerance,
		limit:     DefaultLimit,
		rule:      quad.Kronrod21{},
	}
	for _, o := range opts {
		o(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if math.IsNaN(s.offset) || math.IsInf(s.offset, 0) {
		return s, fmt.Errorf("%w: waist offset %g", ErrBadParameter, s.offset)
	}
	if err := s.quadOptions(1).Validate(); err != nil {
		return s, fmt.Errorf("beam: %w", err)
	}
	if s.limit == 0 {
		return s, fmt.Errorf("%w: subinterval limit must be positive", ErrBadParameter)
	}
	return s, nil
}

// quadOptions returns integrator options for an integral whose value is
// multiplied by scale afterwards, so that the scaled error meets the
// tolerance.
func (s settings) quadOptions(scale float64) quad.Options {
	return quad.Options{
		AbsTol: s.tolerance / scale,
		Limit:  s.limit,
		Rule:   s.rule,
	}
}

// exceeded reports whether either error estimate of res is above the
// tolerance.
func (s settings) exceeded(res quad.Result) bool {
	return !res.Converged() || res.RealErr > s.tolerance || res.ImagErr > s.tolerance
}

func checkWaveNumber(k float64) error {
	if !(k > 0) || math.IsInf(k, 0) {
		return fmt.Errorf("%w: k=%g", ErrNonPositiveWaveNumber, k)
	}
	return nil
}

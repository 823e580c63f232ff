// Package fieldmap samples beam amplitudes on rectangular grids, extracts
// intensity cuts along straight lines and renders both as PNG images and
// plots.
//
// Matrices are stored row major with the row index running along y and the
// column index along x, so that a matrix maps directly onto an image.
package fieldmap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/optbeam/beam"
)

// ErrBadGrid is returned for a grid with fewer than two points along an axis
// or an empty extent.
var ErrBadGrid = errors.New("fieldmap: invalid grid")

// Grid is a rectangle in the propagation plane sampled at Nx by Ny points,
// edges included.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	Nx, Ny     int
}

// Validate checks that the grid has an extent and at least two points per axis.
func (g Grid) Validate() error {
	if g.Nx < 2 || g.Ny < 2 {
		return fmt.Errorf("%w: need at least 2x2 points, got %dx%d", ErrBadGrid, g.Nx, g.Ny)
	}
	if !(g.XMax > g.XMin) || !(g.YMax > g.YMin) {
		return fmt.Errorf("%w: empty extent [%g, %g]x[%g, %g]", ErrBadGrid, g.XMin, g.XMax, g.YMin, g.YMax)
	}
	return nil
}

// Xs returns the x coordinates of the grid columns.
func (g Grid) Xs() []float64 { return floats.Span(make([]float64, g.Nx), g.XMin, g.XMax) }

// Ys returns the y coordinates of the grid rows.
func (g Grid) Ys() []float64 { return floats.Span(make([]float64, g.Ny), g.YMin, g.YMax) }

// Dx is the column spacing.
func (g Grid) Dx() float64 { return (g.XMax - g.XMin) / float64(g.Nx-1) }

// Dy is the row spacing.
func (g Grid) Dy() float64 { return (g.YMax - g.YMin) / float64(g.Ny-1) }

// Map holds sampled amplitudes, Values[row][col] at (Xs()[col], Ys()[row]).
type Map struct {
	Grid   Grid
	Values [][]complex128
}

// Sample evaluates a on every grid point. Rows are distributed over up to
// workers goroutines (GOMAXPROCS if workers <= 0). A cancelled context stops
// the sampling between rows.
func Sample(ctx context.Context, a beam.Amplitude, g Grid, workers int) (*Map, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	xs, ys := g.Xs(), g.Ys()
	values := make([][]complex128, g.Ny)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for row, y := range ys {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			line := make([]complex128, len(xs))
			for col, x := range xs {
				line[col] = a.At(x, y)
			}
			values[row] = line
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Map{Grid: g, Values: values}, nil
}

// Intensity returns |ψ|² for every grid point.
func (m *Map) Intensity() [][]float64 {
	return m.apply(func(v complex128) float64 {
		a := cmplx.Abs(v)
		return a * a
	})
}

// Magnitude returns |ψ| for every grid point.
func (m *Map) Magnitude() [][]float64 { return m.apply(cmplx.Abs) }

// Phase returns arg ψ in (-π, π] for every grid point.
func (m *Map) Phase() [][]float64 { return m.apply(cmplx.Phase) }

// Real returns Re ψ for every grid point.
func (m *Map) Real() [][]float64 { return m.apply(func(v complex128) float64 { return real(v) }) }

func (m *Map) apply(fn func(complex128) float64) [][]float64 {
	out := make([][]float64, len(m.Values))
	for i, row := range m.Values {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = fn(v)
		}
	}
	return out
}

// Normalize scales a matrix in place so that its largest finite value is 1.
// It returns the scale factor that was divided out, 0 if the matrix has no
// positive finite values (in which case it is left alone).
func Normalize(m [][]float64) float64 {
	peak := 0.0
	for _, row := range m {
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v > peak {
				peak = v
			}
		}
	}
	if peak == 0 {
		return 0
	}
	for _, row := range m {
		floats.Scale(1/peak, row)
	}
	return peak
}

// CutPoint is a sample of a cut through a map.
type CutPoint struct {
	Distance float64 // distance from the start of the cut
	Value    float64
}

// Cut samples matrix m, laid out on grid g, at n equidistant points along the
// straight line from (x0, y0) to (x1, y1). Values between grid points are
// bilinearly interpolated; points outside the grid are clamped to its edge.
func Cut(m [][]float64, g Grid, x0, y0, x1, y1 float64, n int) ([]CutPoint, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	h, w, err := checkRect(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGrid, err)
	}
	if h != g.Ny || w != g.Nx {
		return nil, fmt.Errorf("%w: matrix is %dx%d, grid is %dx%d", ErrBadGrid, w, h, g.Nx, g.Ny)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: a cut needs at least 2 points, got %d", ErrBadGrid, n)
	}

	length := math.Hypot(x1-x0, y1-y0)
	dx, dy := g.Dx(), g.Dy()
	out := make([]CutPoint, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		x := x0 + t*(x1-x0)
		y := y0 + t*(y1-y0)
		out[i] = CutPoint{
			Distance: t * length,
			Value:    interpolate(m, (x-g.XMin)/dx, (y-g.YMin)/dy),
		}
	}
	return out, nil
}

// interpolate performs bilinear interpolation on a matrix at fractional
// column x and row y.
func interpolate(matrix [][]float64, x, y float64) float64 {
	rows := len(matrix)
	if rows == 0 {
		return 0
	}
	cols := len(matrix[0])

	// Clamp to the matrix
	x = math.Max(x, 0)
	y = math.Max(y, 0)
	if x >= float64(cols-1) {
		x = float64(cols-1) - 1e-9
	}
	if y >= float64(rows-1) {
		y = float64(rows-1) - 1e-9
	}

	x0 := int(x)
	y0 := int(y)
	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	v00 := matrix[y0][x0]
	v01 := matrix[y0][x0+1]
	v10 := matrix[y0+1][x0]
	v11 := matrix[y0+1][x0+1]

	v0 := v00*(1-xFrac) + v01*xFrac
	v1 := v10*(1-xFrac) + v11*xFrac
	return v0*(1-yFrac) + v1*yFrac
}

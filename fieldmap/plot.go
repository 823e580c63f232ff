package fieldmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Curve is one labelled line of a plot.
type Curve struct {
	Label string
	X, Y  []float64
}

// CutCurve turns a cut into a curve over the distance from its start.
func CutCurve(label string, cut []CutPoint) Curve {
	c := Curve{Label: label, X: make([]float64, len(cut)), Y: make([]float64, len(cut))}
	for i, p := range cut {
		c.X[i] = p.Distance
		c.Y[i] = p.Value
	}
	return c
}

// StepTicks is a tick marker with a fixed step.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	if !(t.Step > 0) {
		return ticks
	}
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

var palette = []color.RGBA{
	{B: 255, A: 255},
	{R: 255, A: 255},
	{G: 160, A: 255},
	{R: 120, G: 120, B: 120, A: 255},
}

// useLiberation sets f to Liberation Sans of the given point size.
func useLiberation(f *font.Font, points float64) {
	f.Typeface = "Liberation"
	f.Variant = "Sans"
	f.Size = vg.Points(points)
}

// PlotCurves draws the curves over a common axis and returns the plot
// rendered at wPx by hPx pixels.
func PlotCurves(title, xLabel, yLabel string, curves []Curve, wPx, hPx float64) (image.Image, error) {
	if len(curves) == 0 {
		return nil, errors.New("nothing to plot")
	}
	p := plot.New()

	useLiberation(&p.Title.TextStyle.Font, 12)
	useLiberation(&p.X.Label.TextStyle.Font, 12)
	useLiberation(&p.Y.Label.TextStyle.Font, 12)
	useLiberation(&p.X.Tick.Label.Font, 10)
	useLiberation(&p.Y.Tick.Label.Font, 10)

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	xMin, xMax := math.Inf(1), math.Inf(-1)
	for i, c := range curves {
		if len(c.X) != len(c.Y) || len(c.X) == 0 {
			return nil, fmt.Errorf("curve %q: %d x values, %d y values", c.Label, len(c.X), len(c.Y))
		}
		pts := make(plotter.XYs, len(c.X))
		for j := range c.X {
			pts[j].X = c.X[j]
			pts[j].Y = c.Y[j]
			xMin = math.Min(xMin, c.X[j])
			xMax = math.Max(xMax, c.X[j])
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = palette[i%len(palette)]
		p.Add(line)
		if c.Label != "" {
			p.Legend.Add(c.Label, line)
		}
	}
	if xMax > xMin {
		p.X.Tick.Marker = StepTicks{Step: (xMax - xMin) / 10, Format: "%.2f"}
	}

	// Zero line
	hline, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: 0}, {X: xMax, Y: 0}})
	if err != nil {
		return nil, err
	}
	hline.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	hline.Color = color.RGBA{A: 255}
	p.Add(hline)

	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	p.Draw(vgdraw.New(c))
	return c.Image(), nil
}

// SaveCurvePlot renders the curves with PlotCurves and writes a PNG file.
func SaveCurvePlot(filename, title, xLabel, yLabel string, curves []Curve, wPx, hPx float64) error {
	img, err := PlotCurves(title, xLabel, yLabel, curves, wPx, hPx)
	if err != nil {
		return err
	}
	return SaveImage(filename, img)
}

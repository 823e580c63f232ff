package main

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/optbeam/beam"
	"github.com/bob-anderson-ok/optbeam/config"
	"github.com/bob-anderson-ok/optbeam/fieldmap"
)

type mapOptions struct {
	*rootOptions
	Nx, Ny int
	XRange []float64
	YRange []float64
	Out    string
	From   string
	Show   bool
	Window int
}

func newMapCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &mapOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "map <parameter-file>",
		Short: "Render the beam intensity over a rectangle around the waist",
		Long: `Sample the beam on a grid in the plane of incidence and write the
normalized intensity as an 8 bit view image, a 16 bit data image (intensity
times 4000) and a plot of the cut across the beam at the waist.

x is measured from the source line and runs along the beam axis. By default
the grid reaches from the source line through the waist to the same distance
beyond it, and spans the source size across the beam.

With --from the beam is not sampled again: the intensity is read back from a
16 bit data image written by an earlier run on the same x and y ranges, and
only the cut, the view images and the plot are produced.

Example:
  optbeam map params.json5 --nx 201 --ny 201 --out gaussian --show
  optbeam map params.json5 --from gaussian16bit.png --out recut`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Nx, "nx", 101, "grid points along the beam axis")
	cmd.Flags().IntVar(&opts.Ny, "ny", 101, "grid points across the beam")
	cmd.Flags().Float64SliceVar(&opts.XRange, "x", nil, "x range as min,max")
	cmd.Flags().Float64SliceVar(&opts.YRange, "y", nil, "y range as min,max")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "beam", "prefix of the output files")
	cmd.Flags().StringVar(&opts.From, "from", "", "re-cut the intensity stored in this 16 bit data image")
	cmd.Flags().BoolVar(&opts.Show, "show", false, "display the results in a window")
	cmd.Flags().IntVar(&opts.Window, "window", 800, "size of the display window in pixels")

	return cmd
}

// defaultGrid spans from the source line through the waist to the mirror
// image of the source line, and the source size across the beam.
func defaultGrid(p config.Params, nx, ny int) fieldmap.Grid {
	d := p.Derive()
	half := d.SourceSize / 2
	g := fieldmap.Grid{XMin: -half, XMax: half, YMin: -half, YMax: half, Nx: nx, Ny: ny}
	if d.Shift != 0 {
		g.XMin = math.Min(0, -2*d.Shift)
		g.XMax = math.Max(0, -2*d.Shift)
	}
	return g
}

func applyRange(lo, hi *float64, r []float64, name string) error {
	switch len(r) {
	case 0:
		return nil
	case 2:
		*lo, *hi = r[0], r[1]
		return nil
	}
	return fmt.Errorf("--%s takes min,max, got %d values", name, len(r))
}

func runMap(cmd *cobra.Command, opts *mapOptions, path string) error {
	p, err := loadParams(opts.rootOptions, path)
	if err != nil {
		return err
	}
	g := defaultGrid(p, opts.Nx, opts.Ny)
	if err := applyRange(&g.XMin, &g.XMax, opts.XRange, "x"); err != nil {
		return err
	}
	if err := applyRange(&g.YMin, &g.YMax, opts.YRange, "y"); err != nil {
		return err
	}

	var intensity [][]float64
	if opts.From != "" {
		intensity, err = fieldmap.LoadGray16PNG(opts.From, fieldmap.Gray16Scale)
		if err != nil {
			return err
		}
		if len(intensity) > 0 {
			g.Nx, g.Ny = len(intensity[0]), len(intensity)
		}
		slog.Info("intensity map loaded", "file", opts.From, "nx", g.Nx, "ny", g.Ny)
	} else {
		intensity, err = sampleIntensity(cmd, p, g)
		if err != nil {
			return err
		}
	}
	peak := fieldmap.Normalize(intensity)

	view, err := fieldmap.MatrixToGrayViewPercentile(intensity, 0, 100)
	if err != nil {
		return fmt.Errorf("creation of the display image failed: %w", err)
	}
	// Cut across the beam through the waist
	d := p.Derive()
	waist := math.Min(math.Max(-d.Shift, g.XMin), g.XMax)
	cut, err := fieldmap.Cut(intensity, g, waist, g.YMin, waist, g.YMax, g.Ny)
	if err != nil {
		return err
	}
	for i := range cut {
		cut[i].Distance += g.YMin
	}
	x0, y0 := g.PixelOf(waist, g.YMin)
	x1, y1 := g.PixelOf(waist, g.YMax)
	annotated := fieldmap.DrawCutOnImage(view, x0, y0, x1, y1)

	title := fmt.Sprintf("Intensity across the beam at x = %.3f", waist)
	plotImg, err := fieldmap.PlotCurves(title, "y", "normalized intensity", []fieldmap.Curve{fieldmap.CutCurve("", cut)}, 1200, 500)
	if err != nil {
		return err
	}

	type output struct {
		name string
		img  image.Image
	}
	outputs := []output{
		{opts.Out + "8bit.png", view},
		{opts.Out + "Cut.png", annotated},
		{opts.Out + "Plot.png", plotImg},
	}
	if opts.From == "" {
		data, err := fieldmap.MatrixToGray16Data(intensity, fieldmap.Gray16Scale)
		if err != nil {
			return fmt.Errorf("creation of the data image failed: %w", err)
		}
		outputs = append(outputs, output{opts.Out + "16bit.png", data})
	}
	for _, o := range outputs {
		if err := fieldmap.SaveImage(o.name, o.img); err != nil {
			return fmt.Errorf("writing of %q failed: %w", o.name, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "peak intensity %.6f, images written with prefix %q\n", peak, opts.Out)

	if opts.Show {
		winTitle := p.Title
		if winTitle == "" {
			winTitle = fmt.Sprintf("%s beam", p.Profile)
		}
		showResults(winTitle, annotated, plotImg, opts.Window)
	}
	return nil
}

func sampleIntensity(cmd *cobra.Command, p config.Params, g fieldmap.Grid) ([][]float64, error) {
	amp, err := p.Build(beam.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("field configuration: %w", err)
	}

	start := time.Now()
	m, err := fieldmap.Sample(cmd.Context(), amp, g, p.Workers)
	if err != nil {
		return nil, err
	}
	slog.Info("intensity map sampled", "nx", g.Nx, "ny", g.Ny, "took", time.Since(start))
	return m.Intensity(), nil
}

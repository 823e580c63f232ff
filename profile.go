package main

import (
	"fmt"
	"log/slog"
	"math/cmplx"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/optbeam/beam"
	"github.com/bob-anderson-ok/optbeam/fieldmap"
)

type profileOptions struct {
	*rootOptions
	Points int
	Span   float64
	CSV    string
	Plot   string
}

func newProfileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &profileOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "profile <parameter-file>",
		Short: "Sample the source amplitude along the source line",
		Long: `Sample the beam amplitude along the line source, which lies at the
configured shift from the beam waist. This is the amplitude a solver
receives through its source callback.

Example:
  optbeam profile params.json5 --points 401 --csv source.csv --plot source.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Points, "points", "n", 201, "number of points along the source line")
	cmd.Flags().Float64Var(&opts.Span, "span", 0, "length of the sampled line (default: source size)")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "write y, Re, Im, |amplitude| to this CSV file")
	cmd.Flags().StringVar(&opts.Plot, "plot", "", "write a plot of the profile to this PNG file")

	return cmd
}

func runProfile(cmd *cobra.Command, opts *profileOptions, path string) error {
	if opts.Points < 2 {
		return fmt.Errorf("need at least 2 points, got %d", opts.Points)
	}
	p, err := loadParams(opts.rootOptions, path)
	if err != nil {
		return err
	}
	amp, err := p.Build(beam.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("field configuration: %w", err)
	}

	d := p.Derive()
	span := opts.Span
	if span <= 0 {
		span = d.SourceSize
	}
	ys := floats.Span(make([]float64, opts.Points), -span/2, span/2)

	start := time.Now()
	values, err := beam.SampleLine(cmd.Context(), amp, 0, ys, p.Workers)
	if err != nil {
		return err
	}
	slog.Info("source line sampled", "points", len(ys), "took", time.Since(start))

	re := make([]float64, len(values))
	im := make([]float64, len(values))
	abs := make([]float64, len(values))
	for i, v := range values {
		re[i], im[i], abs[i] = real(v), imag(v), cmplx.Abs(v)
	}

	out := cmd.OutOrStdout()
	peak := floats.MaxIdx(abs)
	fmt.Fprintf(out, "source line at %.4f from the waist, %d points over %.4f\n", d.Shift, len(ys), span)
	fmt.Fprintf(out, "peak |amplitude| %.6f at y = %.4f\n", abs[peak], ys[peak])
	if w, ok := amp.(interface{ Warned() bool }); ok && w.Warned() {
		fmt.Fprintln(out, "warning: some points did not reach the integration tolerance")
	}

	if opts.CSV != "" {
		if err := writeProfileCSV(opts.CSV, ys, re, im, abs); err != nil {
			return fmt.Errorf("writing of %q failed: %w", opts.CSV, err)
		}
	}
	if opts.Plot != "" {
		curves := []fieldmap.Curve{
			{Label: "|amplitude|", X: ys, Y: abs},
			{Label: "Re", X: ys, Y: re},
			{Label: "Im", X: ys, Y: im},
		}
		title := fmt.Sprintf("Source amplitude (%s profile)", p.Profile)
		if err := fieldmap.SaveCurvePlot(opts.Plot, title, "y", "amplitude", curves, 1200, 500); err != nil {
			return fmt.Errorf("writing of %q failed: %w", opts.Plot, err)
		}
	}
	return nil
}

func writeProfileCSV(filename string, ys, re, im, abs []float64) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fieldmap.WriteColumns(f, []string{"y", "re", "im", "abs"}, ys, re, im, abs)
}

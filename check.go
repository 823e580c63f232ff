package main

import (
	"fmt"
	"log/slog"
	"math/cmplx"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/optbeam/beam"
)

type checkOptions struct {
	*rootOptions
	Points  int
	Span    float64
	MaxDiff float64
}

func newCheckCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <parameter-file>",
		Short: "Compare the adaptive integral with an FFT angular spectrum",
		Long: `Evaluate the source line twice, once with the adaptive plane-wave integral
and once with an inverse FFT of the sampled, propagated spectrum, and report
the largest difference. The FFT field is periodic in the span, so the span
must be wide enough for the beam to have decayed at its ends.

Example:
  optbeam check params.json5 --points 512 --span 9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Points, "points", "n", 512, "number of FFT points")
	cmd.Flags().Float64Var(&opts.Span, "span", 0, "period of the FFT grid (default: source size)")
	cmd.Flags().Float64Var(&opts.MaxDiff, "max-diff", 1e-4, "fail if the fields differ by more than this")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, path string) error {
	p, err := loadParams(opts.rootOptions, path)
	if err != nil {
		return err
	}
	prof, err := p.SpectralProfile()
	if err != nil {
		return err
	}

	d := p.Derive()
	span := opts.Span
	if span <= 0 {
		span = d.SourceSize
	}

	start := time.Now()
	ys, reference, err := beam.AngularSpectrum(prof, d.K1, d.Shift, opts.Points, span)
	if err != nil {
		return err
	}
	slog.Debug("angular spectrum computed", "points", len(ys), "took", time.Since(start))

	field, err := beam.NewField2D(prof, d.K1,
		beam.WithTolerance(p.Tolerance),
		beam.WithLimit(p.Limit),
		beam.WithWaistOffset(d.Shift),
		beam.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("field configuration: %w", err)
	}

	start = time.Now()
	adaptive, err := beam.SampleLine(cmd.Context(), field, 0, ys, p.Workers)
	if err != nil {
		return err
	}
	slog.Debug("adaptive field sampled", "points", len(ys), "took", time.Since(start))

	diff := make([]float64, len(ys))
	mag := make([]float64, len(ys))
	for i := range ys {
		diff[i] = cmplx.Abs(adaptive[i] - reference[i])
		mag[i] = cmplx.Abs(adaptive[i])
	}
	worst := floats.MaxIdx(diff)

	fmt.Fprintf(cmd.OutOrStdout(), "max |difference| %.3g at y = %.4f (peak |amplitude| %.4f, %d points)\n",
		diff[worst], ys[worst], floats.Max(mag), len(ys))
	if diff[worst] > opts.MaxDiff {
		return fmt.Errorf("adaptive and angular spectrum fields differ by %.3g, more than %.3g", diff[worst], opts.MaxDiff)
	}
	return nil
}

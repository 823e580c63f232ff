package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/optbeam/config"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose bool
	Workers int
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "optbeam",
		Short: "Beam source amplitudes from plane-wave spectra",
		Long: `optbeam synthesizes the complex amplitude of a beam from its plane-wave
spectrum, as a source for a solver modelling a beam hitting a planar
dielectric interface. Every command reads a json5 or yaml parameter file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "parallel evaluations (default: workers entry of the parameter file, else all CPUs)")

	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newMapCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))

	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadParams reads the parameter file and applies the global flags.
func loadParams(opts *rootOptions, path string) (config.Params, error) {
	p, err := config.Load(path)
	if err != nil {
		return config.Params{}, err
	}
	if opts.Workers > 0 {
		p.Workers = opts.Workers
	}
	slog.Debug("parameters loaded", "path", path, "profile", p.Profile)
	return p, nil
}

func newInfoCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <parameter-file>",
		Short: "Print the specified and derived parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParams(opts, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version %s\n\n", version)
			if p.Title != "" {
				fmt.Fprintf(out, "%s\n\n", p.Title)
			}
			for _, line := range p.Summary() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

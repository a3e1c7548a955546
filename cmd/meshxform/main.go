// meshxform applies one affine transform (scale about a pivot, rotation about
// an axis through the pivot, then translation) to a batch of mesh files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Faultbox/meshxform/internal/batch"
	"github.com/Faultbox/meshxform/internal/config"
	"github.com/Faultbox/meshxform/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	files  []string
	output string
	flags  config.Flags
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "meshxform -f mesh.obj [-f more.stl ...] -o output",
		Short: "Scale, rotate and translate mesh files",
		Long: `meshxform applies a single homogeneous transform to every input mesh.

The transform is T * R * S: a uniform scale about the pivot, a rotation by an
angle in radians about an axis through the pivot, then a translation.
Supported formats are STL (ASCII and binary), OBJ and OFF.

With several inputs the output must be an existing directory; each result is
written there under its input's file name.`,
		Example: `  meshxform -f part.stl -o moved.stl --translation 0,12,13.5
  meshxform -f a.obj -f b.obj -o out/ --pivot 1,0,0 --rotation 3.1415,0,1,0 --round 4
  meshxform -f *.off -o out/ --scale 2`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, append(opts.files, args...))
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.files, "file", "f", nil, "input mesh file (repeatable; extra arguments are inputs too)")
	f.StringVarP(&opts.output, "output", "o", "", "output file, or existing directory for several inputs")
	f.StringVar(&opts.flags.Round, "round", "", "round vertex coordinates to N decimals (default: no rounding)")
	f.StringVar(&opts.flags.Pivot, "pivot", "", "pivot for scaling and rotation as x,y,z (default 0,0,0)")
	f.StringVar(&opts.flags.Translation, "translation", "", "translation as x,y,z (default 0,0,0)")
	f.StringVar(&opts.flags.Scale, "scale", "", "uniform scale factor (default 1)")
	f.StringVar(&opts.flags.Rotation, "rotation", "", "rotation as angle,x,y,z with the angle in radians (default 0,1,0,0)")
	f.StringVar(&opts.flags.Progress, "progress", "", "progress bar: auto, always or never")
	_ = cmd.MarkFlagRequired("output")

	addGlobalFlags(cmd, &opts.flags)
	cmd.AddCommand(newConfigCmd(&opts.flags))

	return cmd
}

// addGlobalFlags registers the flags shared with the config subcommands.
func addGlobalFlags(cmd *cobra.Command, flags *config.Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default ./meshxform.yaml or the user config dir)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.LogFile, "log-file", "", "also write JSON logs to this file")
}

func runTransform(cmd *cobra.Command, opts *rootOptions, inputs []string) error {
	cfg, err := config.Load(opts.flags)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	rounding, err := cfg.Rounding()
	if err != nil {
		return err
	}
	matrix, err := params.Matrix()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printReport(out, params, rounding, matrix)
	logger.Info("transform resolved",
		zap.Stringer("pivot", params.Pivot),
		zap.Stringer("scale", params.Scale),
		zap.Stringer("translation", params.Translation.Offset),
		zap.Float64("angle", params.Rotation.Angle),
		zap.Stringer("axis", params.Rotation.Axis),
		zap.Stringer("rounding", rounding))
	logger.Sugar.Debugf("%d input files, output %s", len(inputs), opts.output)

	jobs, err := batch.Plan(inputs, opts.output)
	if err != nil {
		return err
	}

	var progress io.Writer
	if cfg.ProgressEnabled(term.IsTerminal(int(os.Stderr.Fd()))) {
		progress = cmd.ErrOrStderr()
	}

	results, err := batch.Run(jobs, batch.Options{
		Matrix:   matrix,
		Rounding: rounding,
		Logger:   logger.Log,
		Progress: progress,
	})
	printSummary(out, results)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

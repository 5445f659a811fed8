package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	// Physical exports use the printed layout: a 6" square
	// with ten lines per quadrant side.
	physicalSpacingRatio = 0.1
	defaultSizeInches    = 6.0
	defaultStrokeMM      = 0.3
	defaultImagePixels   = 800
)

type app struct {
	config   *Config
	logger   *slog.Logger
	logClose io.Closer
}

func newRootCmd(config *Config) *cobra.Command {
	return newApp(config).rootCmd()
}

func newApp(config *Config) *app {
	return &app{config: config, logger: newNopLogger()}
}

func (a *app) rootCmd() *cobra.Command {
	config := a.config

	root := &cobra.Command{
		Use:          "sol11",
		Short:        "Sol LeWitt's Wall Drawing #11, animated",
		Long:         "A wall divided horizontally and vertically into four equal parts.\nWithin each part, three of the four kinds of lines are superimposed.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if config.FPS < 1 {
				return fmt.Errorf("fps must be at least 1, got %d", config.FPS)
			}
			logger, closer, err := openLogger(config.LogFile, config.LogLevel)
			if err != nil {
				return err
			}
			a.logger, a.logClose = logger, closer
			return nil
		},
		RunE: a.runAnimate,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&config.LogFile, "log", config.LogFile, "write logs to this file")
	pf.StringVar(&config.LogLevel, "log-level", config.LogLevel, "debug, info, warn or error")
	pf.Float64Var(&config.Params.SpacingRatio, "spacing", config.Params.SpacingRatio, "line spacing as a fraction of the canvas side")
	pf.Float64Var(&config.Params.CommonOffset, "offset", config.Params.CommonOffset, "per-quadrant offset, applied with mirrored signs")
	pf.Float64Var(&config.Side, "side", config.Side, "canvas side in canvas units")
	pf.IntVar(&config.FPS, "fps", config.FPS, "frames per second")

	root.AddCommand(
		&cobra.Command{
			Use:   "animate",
			Short: "Animate in the terminal (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runAnimate,
		},
		a.windowCmd(),
		a.frameCmd(),
		a.svgCmd(),
		a.gifCmd(),
		a.plotCmd(),
	)

	// Close the log after every RunE, failed ones included.
	for _, c := range append(root.Commands(), root) {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.closeLog()
			return run(cmd, args)
		}
	}
	return root
}

func (a *app) closeLog() {
	if a.logClose == nil {
		return
	}
	if err := a.logClose.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log: %v\n", err)
	}
	a.logClose = nil
	a.logger = newNopLogger()
}

func (a *app) newAnimator(side float64) (*Animator, error) {
	anim := NewAnimator(a.config.Params, a.logger)
	if err := anim.Configure(side); err != nil {
		return nil, err
	}
	return anim, nil
}

func (a *app) runAnimate(cmd *cobra.Command, args []string) error {
	m, err := initialModel(a.config, a.logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (a *app) windowCmd() *cobra.Command {
	var (
		fit bool
		px  int
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Animate in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := windowPixels(px, fit, displaySide)
			if err != nil {
				return err
			}
			anim, err := a.newAnimator(a.config.Side)
			if err != nil {
				return err
			}
			return runWindow(anim, size, a.config.FPS, a.logger)
		},
	}
	cmd.Flags().BoolVar(&fit, "fit", false, "size the window to half the display height")
	cmd.Flags().IntVar(&px, "px", defaultImagePixels, "window side in pixels")
	return cmd
}

// windowPixels is the window side in pixels: px, or half the display
// height with fit. The canvas side only sets the drawing scale.
func windowPixels(px int, fit bool, display func() float64) (int, error) {
	if fit {
		px = int(display())
	}
	if px < 1 {
		return 0, fmt.Errorf("window side must be at least 1 pixel, got %d", px)
	}
	return px, nil
}

func (a *app) frameCmd() *cobra.Command {
	var (
		frame   int
		px      int
		caption string
	)
	cmd := &cobra.Command{
		Use:   "frame [output.png]",
		Short: "Render a single frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := a.newAnimator(a.config.Side)
			if err != nil {
				return err
			}
			anim.SetFrame(frame)
			out := a.output(args, "sol11_output.png")
			if err := ExportPNG(out, anim, px, caption); err != nil {
				return fmt.Errorf("failed to export PNG: %w", err)
			}
			a.logger.Info("frame exported", "path", out, "frame", frame)
			fmt.Fprintf(cmd.OutOrStdout(), "PNG saved to: %s\n", out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "frame index")
	cmd.Flags().IntVar(&px, "px", defaultImagePixels, "image side in pixels")
	cmd.Flags().StringVar(&caption, "caption", "", "label printed under the drawing")
	return cmd
}

func (a *app) svgCmd() *cobra.Command {
	var (
		frame  int
		size   float64
		stroke float64
	)
	cmd := &cobra.Command{
		Use:   "svg [output.svg]",
		Short: "Export a single frame to SVG in millimetres",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := a.physicalAnimator(cmd, size)
			if err != nil {
				return err
			}
			anim.SetFrame(frame)
			out := a.output(args, "sol11_output.svg")
			if err := ExportSVG(out, anim, svgOptions{Unit: "mm", Stroke: stroke}); err != nil {
				return fmt.Errorf("failed to export SVG: %w", err)
			}
			a.logger.Info("svg exported", "path", out, "frame", frame, "inches", size)
			fmt.Fprintf(cmd.OutOrStdout(), "SVG saved to: %s\n", out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "frame index")
	cmd.Flags().Float64VarP(&size, "size", "s", defaultSizeInches, "drawing size in inches")
	cmd.Flags().Float64Var(&stroke, "stroke", defaultStrokeMM, "stroke width in mm")
	return cmd
}

func (a *app) gifCmd() *cobra.Command {
	var (
		frames int
		px     int
	)
	cmd := &cobra.Command{
		Use:   "gif [output.gif]",
		Short: "Record consecutive frames as an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := a.newAnimator(a.config.Side)
			if err != nil {
				return err
			}
			out := a.output(args, "sol11_output.gif")
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := ExportGIF(file, anim, px, frames, a.config.FPS); err != nil {
				file.Close()
				return fmt.Errorf("failed to export GIF: %w", err)
			}
			if err := file.Close(); err != nil {
				return err
			}
			a.logger.Info("gif exported", "path", out, "frames", frames)
			fmt.Fprintf(cmd.OutOrStdout(), "GIF saved to: %s\n", out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", defaultFrames, "number of frames")
	cmd.Flags().IntVar(&px, "px", defaultImagePixels/2, "image side in pixels")
	return cmd
}

func (a *app) plotCmd() *cobra.Command {
	var (
		frame  int
		size   float64
		dryRun bool
		opts   = plotOptions{PenDownPercent: defaultPenDownPercent, PenUpPercent: defaultPenUpPercent}
	)
	cmd := &cobra.Command{
		Use:   "plot [commands.txt]",
		Short: "Produce a pen-plotter path for a single frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := a.physicalAnimator(cmd, size)
			if err != nil {
				return err
			}
			anim.SetFrame(frame)
			plan, err := planPlot(anim)
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(stdout, "Dry run: would draw %s\n", plan.Summary(opts))
				return nil
			}
			if len(args) == 0 {
				_, err := plan.WriteTo(stdout)
				return err
			}
			file, err := os.Create(a.config.GetSavePath(args[0]))
			if err != nil {
				return err
			}
			if _, err := plan.WriteTo(file); err != nil {
				file.Close()
				return err
			}
			a.logger.Info("plot written", "path", file.Name(), "commands", len(plan.Commands))
			fmt.Fprintf(stdout, "Plot saved to: %s (%s)\n", file.Name(), plan.Summary(opts))
			return file.Close()
		},
	}
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "frame index")
	cmd.Flags().Float64VarP(&size, "size", "s", defaultSizeInches, "drawing size in inches")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be drawn")
	cmd.Flags().Float64Var(&opts.PenDownPercent, "pen-down", opts.PenDownPercent, "pen-down speed, percent")
	cmd.Flags().Float64Var(&opts.PenUpPercent, "pen-up", opts.PenUpPercent, "pen-up speed, percent")
	return cmd
}

// physicalAnimator sizes the drawing in millimetres. Unless --spacing was
// given it uses the wider spacing of the printed version.
func (a *app) physicalAnimator(cmd *cobra.Command, inches float64) (*Animator, error) {
	params := a.config.Params
	if !cmd.Flags().Changed("spacing") {
		params.SpacingRatio = physicalSpacingRatio
	}
	anim := NewAnimator(params, a.logger)
	if err := anim.Configure(inches * mmPerInch); err != nil {
		return nil, err
	}
	return anim, nil
}

func (a *app) output(args []string, fallback string) string {
	name := fallback
	if len(args) > 0 {
		name = args[0]
	}
	return a.config.GetSavePath(name)
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

const (
	// Travel area of an 11" x 8.5" pen plotter, in mm.
	plotPageWidth  = 11 * mmPerInch
	plotPageHeight = 8.5 * mmPerInch

	// Carriage speed at 100%, mm/s. Only used for the time estimate.
	plotMaxSpeed = 220.0

	defaultPenDownPercent = 25
	defaultPenUpPercent   = 75
)

type PenOp int

const (
	PenMove PenOp = iota // pen up
	PenLine              // pen down
)

type PenCommand struct {
	Op   PenOp
	X, Y float64
}

func (c PenCommand) String() string {
	if c.Op == PenMove {
		return fmt.Sprintf("moveto %.3f %.3f", c.X, c.Y)
	}
	return fmt.Sprintf("lineto %.3f %.3f", c.X, c.Y)
}

type plotOptions struct {
	PenDownPercent float64
	PenUpPercent   float64
}

// PlotPlan is the pen path for one frame, in mm, centred on the plotter page.
type PlotPlan struct {
	Commands []PenCommand
	Lines    int
	Size     float64
	PenDown  float64 // mm drawn
	PenUp    float64 // mm travelled with the pen raised
}

// planPlot turns the current frame into moveto/lineto commands. The
// animator's canvas units are taken to be millimetres.
func planPlot(a *Animator) (*PlotPlan, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}
	r := &recorder{}
	drawStill(a, r)

	size := a.Side()
	offX := (plotPageWidth - size) / 2
	offY := (plotPageHeight - size) / 2

	plan := &PlotPlan{Lines: len(r.segments), Size: size}
	pos := point{0, 0}
	for _, seg := range r.segments {
		start := point{seg.X1 + offX, seg.Y1 + offY}
		end := point{seg.X2 + offX, seg.Y2 + offY}
		if start != pos {
			plan.PenUp += pos.dist(start)
			plan.Commands = append(plan.Commands, PenCommand{PenMove, start.X, start.Y})
		}
		plan.PenDown += start.dist(end)
		plan.Commands = append(plan.Commands, PenCommand{PenLine, end.X, end.Y})
		pos = end
	}
	plan.PenUp += pos.dist(point{0, 0})
	plan.Commands = append(plan.Commands, PenCommand{PenMove, 0, 0})
	return plan, nil
}

// Estimate is a rough plotting time that ignores acceleration and pen lifts.
func (p *PlotPlan) Estimate(opts plotOptions) time.Duration {
	down := plotMaxSpeed * clampFloat(opts.PenDownPercent, 1, 100) / 100
	up := plotMaxSpeed * clampFloat(opts.PenUpPercent, 1, 100) / 100
	secs := p.PenDown/down + p.PenUp/up
	return time.Duration(secs * float64(time.Second))
}

func (p *PlotPlan) Summary(opts plotOptions) string {
	inches := p.Size / mmPerInch
	return fmt.Sprintf("%d lines, %.1fmm x %.1fmm (%.2g\" x %.2g\"), about %s",
		p.Lines, p.Size, p.Size, inches, inches, p.Estimate(opts).Round(time.Second))
}

func (p *PlotPlan) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, c := range p.Commands {
		k, err := fmt.Fprintln(bw, c.String())
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

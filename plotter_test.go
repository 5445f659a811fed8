package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlanPlot(t *testing.T) {
	a := newTestAnimator(t, 6*mmPerInch, func(p *Params) { p.SpacingRatio = physicalSpacingRatio })
	plan, err := planPlot(a)
	if err != nil {
		t.Fatal(err)
	}

	if want := 2 + len(a.Segments()); plan.Lines != want {
		t.Fatalf("plan has %d lines, want %d", plan.Lines, want)
	}
	var draws int
	for _, c := range plan.Commands {
		if c.Op == PenLine {
			draws++
		}
	}
	if draws != plan.Lines {
		t.Fatalf("%d lineto commands for %d lines", draws, plan.Lines)
	}

	offX := (plotPageWidth - a.Side()) / 2
	offY := (plotPageHeight - a.Side()) / 2
	first := plan.Commands[0]
	if first.Op != PenMove || first.X != a.Side()/2+offX || first.Y != offY {
		t.Fatalf("first command = %+v, want moveto top of the vertical divider", first)
	}
	last := plan.Commands[len(plan.Commands)-1]
	if last != (PenCommand{PenMove, 0, 0}) {
		t.Fatalf("last command = %+v, want return home", last)
	}
	if plan.PenDown <= 0 || plan.PenUp <= 0 {
		t.Fatalf("distances not accumulated: down %v up %v", plan.PenDown, plan.PenUp)
	}
}

func TestPlotEstimateScalesWithSpeed(t *testing.T) {
	plan := &PlotPlan{PenDown: 1000, PenUp: 1000}
	slow := plan.Estimate(plotOptions{PenDownPercent: 25, PenUpPercent: 75})
	fast := plan.Estimate(plotOptions{PenDownPercent: 50, PenUpPercent: 75})
	if !(fast < slow) {
		t.Fatalf("faster pen-down speed did not shorten the estimate: %v vs %v", fast, slow)
	}
	if got := plan.Estimate(plotOptions{}); got <= 0 {
		t.Fatalf("zero speeds should clamp, got %v", got)
	}
}

func TestPlotPlanWriteTo(t *testing.T) {
	plan := &PlotPlan{Commands: []PenCommand{{PenMove, 1, 2}, {PenLine, 3.5, 4}, {PenMove, 0, 0}}}
	var buf bytes.Buffer
	if _, err := plan.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	want := "moveto 1.000 2.000\nlineto 3.500 4.000\nmoveto 0.000 0.000\n"
	if buf.String() != want {
		t.Fatalf("WriteTo wrote %q, want %q", buf.String(), want)
	}
	if s := plan.Summary(plotOptions{PenDownPercent: 25, PenUpPercent: 75}); !strings.Contains(s, "0 lines") {
		t.Fatalf("summary = %q", s)
	}
}

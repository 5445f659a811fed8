package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	ErrInvalidSide    = errors.New("canvas side must be positive")
	ErrInvalidSpacing = errors.New("line spacing must be positive")
	ErrNotConfigured  = errors.New("animator is not configured")
)

// Animator owns the phase state of the four line families and renders
// Sol LeWitt's Wall Drawing #11: a square divided into four quadrants,
// each with three of the four kinds of lines superimposed.
//
// The host must call Configure once before RenderFrame. An Animator is
// not safe for concurrent use.
type Animator struct {
	params Params
	logger *slog.Logger

	side    float64
	half    float64
	spacing float64

	phases  [numFamilies]float64
	speeds  [numFamilies]float64
	anchors [numQuadrants]point
	offsets [numQuadrants]point

	frame      int
	onSchedule bool
	configured bool
}

func NewAnimator(params Params, logger *slog.Logger) *Animator {
	if logger == nil {
		logger = newNopLogger()
	}
	return &Animator{params: params, logger: logger}
}

// Configure sizes the drawing for a square canvas of the given side and
// resets all phases to their initial values.
func (a *Animator) Configure(side float64) error {
	if !(side > 0) || math.IsInf(side, 0) {
		a.logger.Error("rejecting canvas side", "side", side)
		return fmt.Errorf("configure side %v: %w", side, ErrInvalidSide)
	}
	spacing := side * a.params.SpacingRatio
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		a.logger.Error("rejecting line spacing", "side", side, "ratio", a.params.SpacingRatio)
		return fmt.Errorf("configure spacing %v: %w", spacing, ErrInvalidSpacing)
	}

	a.side = side
	a.half = side / 2
	a.spacing = spacing
	a.speeds = a.params.Speeds
	for f := range a.phases {
		a.phases[f] = wrapPhase(a.params.Phases[f], spacing)
	}

	h := a.half
	a.anchors = [numQuadrants]point{
		TopRight:    {h, 0},
		TopLeft:     {0, 0},
		BottomRight: {h, h},
		BottomLeft:  {0, h},
	}
	c := a.params.CommonOffset
	a.offsets = [numQuadrants]point{
		TopRight:    {c, -c},
		TopLeft:     {-c, -c},
		BottomRight: {c, c},
		BottomLeft:  {-c, c},
	}

	a.frame = 0
	a.onSchedule = true
	a.configured = true
	a.logger.Debug("animator configured", "side", side, "spacing", spacing, "offset", c)
	return nil
}

// RenderFrame clears s, draws the quadrant dividers, advances the phases
// by one frame and draws the line families.
func (a *Animator) RenderFrame(s Surface) error {
	if !a.configured {
		return ErrNotConfigured
	}
	s.Clear()
	for _, d := range a.Dividers() {
		s.DrawLine(d.X1, d.Y1, d.X2, d.Y2)
	}
	a.Advance()
	a.Draw(s)
	return nil
}

// Advance moves every family forward by its speed, wrapping modulo the
// line spacing.
func (a *Animator) Advance() {
	a.AdvanceScaled(1)
}

// AdvanceScaled is Advance with every speed multiplied by scale. The
// frame counter still moves by one, so any scale other than 1 takes the
// phases off schedule.
func (a *Animator) AdvanceScaled(scale float64) {
	for f := range a.phases {
		a.phases[f] = wrapPhase(a.phases[f]+a.speeds[f]*scale, a.spacing)
	}
	a.frame++
	if scale != 1 {
		a.onSchedule = false
	}
}

// SetFrame jumps straight to frame n, computing each phase from its
// initial value rather than replaying n steps.
func (a *Animator) SetFrame(n int) {
	for f := range a.phases {
		a.phases[f] = wrapPhase(a.params.Phases[f]+a.speeds[f]*float64(n), a.spacing)
	}
	a.frame = n
	a.onSchedule = true
}

// Nudge shifts a single family by delta without touching the others.
func (a *Animator) Nudge(f LineFamily, delta float64) {
	a.phases[f] = wrapPhase(a.phases[f]+delta, a.spacing)
	if delta != 0 {
		a.onSchedule = false
	}
}

// OnSchedule reports whether the phases are exactly what SetFrame(Frame())
// would produce. Tempo changes and nudges clear it.
func (a *Animator) OnSchedule() bool { return a.onSchedule }

func (a *Animator) Phase(f LineFamily) float64 { return a.phases[f] }
func (a *Animator) Speed(f LineFamily) float64 { return a.speeds[f] }
func (a *Animator) Spacing() float64           { return a.spacing }
func (a *Animator) Side() float64              { return a.side }
func (a *Animator) Frame() int                 { return a.frame }
func (a *Animator) Configured() bool           { return a.configured }

// Origin is the top-left corner a quadrant's lines are anchored at.
func (a *Animator) Origin(q Quadrant) point {
	return point{a.anchors[q].X + a.offsets[q].X, a.anchors[q].Y + a.offsets[q].Y}
}

func (a *Animator) Dividers() []Segment {
	return []Segment{
		{a.half, 0, a.half, a.side},
		{0, a.half, a.side, a.half},
	}
}

// Draw emits the three families of every quadrant without clearing or
// advancing.
func (a *Animator) Draw(s Surface) {
	for q := Quadrant(0); q < numQuadrants; q++ {
		origin := a.Origin(q)
		for f := LineFamily(0); f < numFamilies; f++ {
			if f == q.Skips() {
				continue
			}
			a.drawFamily(s, f, origin)
		}
	}
}

// Segments returns the pattern lines Draw would emit for the current phases.
func (a *Animator) Segments() []Segment {
	r := &recorder{}
	a.Draw(r)
	return r.segments
}

func (a *Animator) drawFamily(s Surface, f LineFamily, o point) {
	h, L := a.half, a.spacing
	p := a.phases[f]

	switch f {
	case Horizontal:
		for i, n := 0, lineCount(o.Y+p, o.Y+h-1, L); i < n; i++ {
			y := o.Y + p + float64(i)*L
			s.DrawLine(o.X, y, o.X+h, y)
		}
	case Vertical:
		for i, n := 0, lineCount(o.X+p, o.X+h-1, L); i < n; i++ {
			x := o.X + p + float64(i)*L
			s.DrawLine(x, o.Y, x, o.Y+h)
		}
	case DiagonalA:
		for i, n := 0, lineCount(p, p+h-1, L); i < n; i++ {
			d := p + float64(i)*L
			s.DrawLine(o.X, o.Y+h-d, o.X+d, o.Y+h)
			s.DrawLine(o.X+d, o.Y, o.X+h, o.Y+h-d)
		}
	case DiagonalB:
		for i, n := 0, lineCount(p, p+h-1, L); i < n; i++ {
			d := p + float64(i)*L
			s.DrawLine(o.X+d, o.Y+h, o.X+h, o.Y+d)
			s.DrawLine(o.X, o.Y+d, o.X+d, o.Y)
		}
	}
}

// lineCount is the number of values start, start+step, ... that do not
// exceed end.
func lineCount(start, end, step float64) int {
	if end < start {
		return 0
	}
	return int(math.Floor((end-start)/step)) + 1
}

// wrapPhase reduces p into [0, spacing).
func wrapPhase(p, spacing float64) float64 {
	r := math.Mod(p, spacing)
	if r < 0 {
		r += spacing
	}
	if r >= spacing {
		r = 0
	}
	return r
}

package main

// LineFamily is one of the four kinds of lines in the drawing. DiagonalA
// runs from top-left to bottom-right on screen, DiagonalB the other way.
type LineFamily int

const (
	Horizontal LineFamily = iota
	DiagonalA
	Vertical
	DiagonalB
)

const numFamilies = 4

func (f LineFamily) String() string {
	switch f {
	case Horizontal:
		return "horizontal"
	case DiagonalA:
		return "diagonal-a"
	case Vertical:
		return "vertical"
	case DiagonalB:
		return "diagonal-b"
	}
	return "unknown"
}

// Quadrant indexes the four equal boxes of the canvas. Quadrant q omits
// the line family with the same index.
type Quadrant int

const (
	TopRight Quadrant = iota
	TopLeft
	BottomRight
	BottomLeft
)

const numQuadrants = 4

// Skips returns the line family that is not drawn in q.
func (q Quadrant) Skips() LineFamily {
	return LineFamily(q)
}

func (q Quadrant) String() string {
	switch q {
	case TopRight:
		return "top-right"
	case TopLeft:
		return "top-left"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "unknown"
}

type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeHelp
)

const (
	defaultSpacingRatio = 0.05
	defaultFPS          = 30
	defaultSide         = 540.0
	defaultFrames       = 120

	// Speeds are in canvas units per frame. Distinct values keep the
	// families drifting out of step.
	defaultHorizontalSpeed = 1.25
	defaultVerticalSpeed   = 1.0
	defaultDiagonalSpeedA  = 0.75
	defaultDiagonalSpeedB  = 0.5

	minTempo = 0.0
	maxTempo = 4.0

	mmPerInch = 25.4
)

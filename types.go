package main

// Surface is the immediate-mode drawing target the animator renders into.
type Surface interface {
	Clear()
	DrawLine(x1, y1, x2, y2 float64)
}

type point struct {
	X, Y float64
}

// Segment is a straight line from (X1, Y1) to (X2, Y2) in canvas units.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Params holds everything the animator needs that is fixed for a session.
type Params struct {
	SpacingRatio float64
	Speeds       [numFamilies]float64
	Phases       [numFamilies]float64
	CommonOffset float64
}

func defaultParams() Params {
	return Params{
		SpacingRatio: defaultSpacingRatio,
		Speeds: [numFamilies]float64{
			Horizontal: defaultHorizontalSpeed,
			DiagonalA:  defaultDiagonalSpeedA,
			Vertical:   defaultVerticalSpeed,
			DiagonalB:  defaultDiagonalSpeedB,
		},
	}
}

// recorder is a Surface that keeps every segment drawn since the last Clear.
type recorder struct {
	segments []Segment
	clears   int
}

func (r *recorder) Clear() {
	r.segments = r.segments[:0]
	r.clears++
}

func (r *recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.segments = append(r.segments, Segment{x1, y1, x2, y2})
}

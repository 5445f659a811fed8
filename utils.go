package main

import (
	"bytes"
	"math"

	"github.com/atotto/clipboard"
)

func (p point) dist(q point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// copyFrameSVG puts the animator's current frame on the system clipboard
// as an SVG document.
func copyFrameSVG(a *Animator) error {
	var buf bytes.Buffer
	if err := writeSVG(&buf, a, svgOptions{Unit: "px", Stroke: 1}); err != nil {
		return err
	}
	return clipboard.WriteAll(buf.String())
}

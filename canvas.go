package main

import (
	"math"
	"strings"
)

const brailleBase = 0x2800

// brailleBits maps a dot inside a 2x4 cell to its bit in the braille
// pattern block.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// BrailleCanvas is a terminal Surface. Every character cell holds 2x4
// dots, which keeps dots close to square on typical terminal fonts.
type BrailleCanvas struct {
	cols, rows int
	grid       [][]rune
	scale      float64
}

// NewBrailleCanvas fits a square drawing of the given side into a
// cols x rows character area.
func NewBrailleCanvas(cols, rows int, side float64) *BrailleCanvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &BrailleCanvas{cols: cols, rows: rows}
	c.grid = make([][]rune, rows)
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
	}
	dots := min(c.DotWidth(), c.DotHeight())
	if side > 0 && dots > 1 {
		c.scale = float64(dots-1) / side
	}
	c.Clear()
	return c
}

func (c *BrailleCanvas) DotWidth() int  { return c.cols * 2 }
func (c *BrailleCanvas) DotHeight() int { return c.rows * 4 }

func (c *BrailleCanvas) Clear() {
	for _, row := range c.grid {
		for i := range row {
			row[i] = brailleBase
		}
	}
}

// DrawLine maps canvas units to dots and rasterizes with Bresenham's
// algorithm.
func (c *BrailleCanvas) DrawLine(x1, y1, x2, y2 float64) {
	c.line(c.toDot(x1), c.toDot(y1), c.toDot(x2), c.toDot(y2))
}

func (c *BrailleCanvas) toDot(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *BrailleCanvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *BrailleCanvas) Set(x, y int) {
	if !c.isValidDot(x, y) {
		return
	}
	c.grid[y/4][x/2] |= brailleBits[y%4][x%2]
}

func (c *BrailleCanvas) Dot(x, y int) bool {
	if !c.isValidDot(x, y) {
		return false
	}
	return c.grid[y/4][x/2]&brailleBits[y%4][x%2] != 0
}

func (c *BrailleCanvas) isValidDot(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.DotWidth() && y < c.DotHeight()
}

func (c *BrailleCanvas) Lines() []string {
	lines := make([]string, len(c.grid))
	for i, row := range c.grid {
		lines[i] = string(row)
	}
	return lines
}

func (c *BrailleCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

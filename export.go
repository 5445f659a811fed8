package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	captionHeight = 20
	captionSize   = 12.0

	// svgGrid subdivides one canvas unit so integer SVG coordinates keep
	// two decimal places.
	svgGrid = 100
)

// drawStill renders the current phases without advancing them.
func drawStill(a *Animator, s Surface) {
	s.Clear()
	for _, d := range a.Dividers() {
		s.DrawLine(d.X1, d.Y1, d.X2, d.Y2)
	}
	a.Draw(s)
}

// imageSurface rasterizes onto a gg context scaled so the canvas side
// fills px pixels.
type imageSurface struct {
	dc      *gg.Context
	scale   float64
	px      int
	caption string
	face    font.Face
}

func newImageSurface(px int, side float64) *imageSurface {
	return &imageSurface{
		dc:    gg.NewContext(px, px),
		scale: float64(px) / side,
		px:    px,
	}
}

// withCaption grows the image by a strip along the bottom for a label.
func (s *imageSurface) withCaption(text string) (*imageSurface, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	s.face = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.caption = text
	s.dc = gg.NewContext(s.px, s.px+captionHeight)
	s.dc.SetFontFace(s.face)
	return s, nil
}

func (s *imageSurface) Clear() {
	s.dc.SetColor(color.White)
	s.dc.Clear()
	s.dc.SetColor(color.Black)
	s.dc.SetLineWidth(1.0)
	if s.caption != "" {
		s.dc.DrawStringAnchored(s.caption, 4, float64(s.px)+captionHeight/2, 0, 0.5)
	}
}

func (s *imageSurface) DrawLine(x1, y1, x2, y2 float64) {
	k := s.scale
	s.dc.DrawLine(x1*k, y1*k, x2*k, y2*k)
	s.dc.Stroke()
}

func (s *imageSurface) Image() image.Image {
	return s.dc.Image()
}

// ExportPNG writes the animator's current frame as a px by px PNG.
func ExportPNG(filename string, a *Animator, px int, caption string) error {
	if !a.Configured() {
		return ErrNotConfigured
	}
	if px < 1 {
		return fmt.Errorf("image size must be positive, got %d", px)
	}
	s := newImageSurface(px, a.Side())
	if caption != "" {
		var err error
		if s, err = s.withCaption(caption); err != nil {
			return err
		}
	}
	drawStill(a, s)
	return s.dc.SavePNG(filename)
}

// ExportGIF renders frames consecutive frames, starting after the
// animator's current one, into an animated GIF.
func ExportGIF(w io.Writer, a *Animator, px, frames, fps int) error {
	if !a.Configured() {
		return ErrNotConfigured
	}
	if px < 1 || frames < 1 || fps < 1 {
		return fmt.Errorf("gif needs positive size, frames and fps (got %d, %d, %d)", px, frames, fps)
	}
	s := newImageSurface(px, a.Side())
	palette := grayPalette(16)
	delay := max(1, 100/fps)

	anim := &gif.GIF{LoopCount: 0}
	for i := 0; i < frames; i++ {
		if err := a.RenderFrame(s); err != nil {
			return err
		}
		src := s.Image()
		dst := image.NewPaletted(src.Bounds(), palette)
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, dst)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}

func grayPalette(levels int) color.Palette {
	p := make(color.Palette, levels)
	for i := range p {
		v := uint8(255 * i / (levels - 1))
		p[i] = color.Gray{Y: v}
	}
	return p
}

type svgOptions struct {
	Unit   string  // "mm", "px", ...
	Stroke float64 // stroke width in Unit
}

// svgSurface emits every line as an SVG <line> element.
type svgSurface struct {
	canvas *svg.SVG
}

func (s *svgSurface) Clear() {}

func (s *svgSurface) DrawLine(x1, y1, x2, y2 float64) {
	s.canvas.Line(svgCoord(x1), svgCoord(y1), svgCoord(x2), svgCoord(y2))
}

func svgCoord(v float64) int {
	return int(math.Round(v * svgGrid))
}

// writeSVG writes the current frame with canvas units mapped one to one
// onto opts.Unit.
func writeSVG(w io.Writer, a *Animator, opts svgOptions) error {
	if !a.Configured() {
		return ErrNotConfigured
	}
	side := a.Side()
	grid := svgCoord(side)

	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Startraw(
		fmt.Sprintf(`width="%g%s"`, side, opts.Unit),
		fmt.Sprintf(`height="%g%s"`, side, opts.Unit),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, grid, grid),
	)
	canvas.Title("Wall Drawing #11")
	canvas.Gstyle(fmt.Sprintf("stroke:black;stroke-width:%d;fill:none", svgCoord(opts.Stroke)))
	drawStill(a, &svgSurface{canvas: canvas})
	canvas.Gend()
	canvas.End()
	return bw.Flush()
}

// ExportSVG writes the current frame to filename.
func ExportSVG(filename string, a *Animator, opts svgOptions) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writeSVG(file, a, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

package main

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenSurface draws onto an offscreen ebiten image.
type ebitenSurface struct {
	dst   *ebiten.Image
	scale float32
}

func (s *ebitenSurface) Clear() {
	s.dst.Fill(color.White)
}

func (s *ebitenSurface) DrawLine(x1, y1, x2, y2 float64) {
	k := s.scale
	vector.StrokeLine(s.dst, float32(x1)*k, float32(y1)*k, float32(x2)*k, float32(y2)*k, 1, color.Black, false)
}

// windowGame renders one frame per tick into an offscreen image and
// blits it on Draw, so the animation speed follows the TPS rather than
// the display refresh rate.
type windowGame struct {
	animator *Animator
	logger   *slog.Logger
	px       int
	surface  *ebitenSurface
}

func (g *windowGame) Update() error {
	if g.surface == nil {
		g.surface = &ebitenSurface{
			dst:   ebiten.NewImage(g.px, g.px),
			scale: float32(float64(g.px) / g.animator.Side()),
		}
	}
	if err := g.animator.RenderFrame(g.surface); err != nil {
		g.logger.Error("frame failed", "frame", g.animator.Frame(), "err", err)
		return err
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		screen.Fill(color.White)
		return
	}
	screen.DrawImage(g.surface.dst, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.px, g.px
}

// displaySide is half the height of the current monitor, the window side
// used by --fit.
func displaySide() float64 {
	_, h := ebiten.Monitor().Size()
	return float64(h) * 0.5
}

func runWindow(a *Animator, px, fps int, logger *slog.Logger) error {
	ebiten.SetWindowSize(px, px)
	ebiten.SetWindowTitle("Wall Drawing #11")
	ebiten.SetTPS(fps)
	logger.Info("opening window", "px", px, "fps", fps, "side", a.Side())
	return ebiten.RunGame(&windowGame{animator: a, logger: logger, px: px})
}

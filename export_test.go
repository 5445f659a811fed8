package main

import (
	"bytes"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportPNG(t *testing.T) {
	a := newTestAnimator(t, 200, nil)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := ExportPNG(path, a, 200, ""); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("image is %dx%d, want 200x200", b.Dx(), b.Dy())
	}

	var white, dark int
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			switch {
			case r == 0xffff:
				white++
			case r < 0xc000:
				dark++
			}
		}
	}
	if white == 0 || dark == 0 {
		t.Fatalf("expected both background and lines, got %d white and %d dark pixels", white, dark)
	}
	if a.Frame() != 0 {
		t.Fatalf("exporting advanced the animation to frame %d", a.Frame())
	}
}

func TestExportPNGCaption(t *testing.T) {
	a := newTestAnimator(t, 200, nil)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := ExportPNG(path, a, 100, "frame 0"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 100 || cfg.Height != 100+captionHeight {
		t.Fatalf("captioned image is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestExportRequiresConfiguredAnimator(t *testing.T) {
	a := NewAnimator(defaultParams(), nil)
	dir := t.TempDir()
	if err := ExportPNG(filepath.Join(dir, "a.png"), a, 10, ""); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ExportPNG error = %v", err)
	}
	if err := ExportSVG(filepath.Join(dir, "a.svg"), a, svgOptions{Unit: "mm"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ExportSVG error = %v", err)
	}
	if err := ExportGIF(&bytes.Buffer{}, a, 10, 1, 1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ExportGIF error = %v", err)
	}

	b := newTestAnimator(t, 200, nil)
	if err := ExportPNG(filepath.Join(dir, "b.png"), b, 0, ""); err == nil {
		t.Error("ExportPNG accepted a zero image size")
	}
}

func TestWriteSVG(t *testing.T) {
	a := newTestAnimator(t, 200, withPhases(3))
	var buf bytes.Buffer
	if err := writeSVG(&buf, a, svgOptions{Unit: "mm", Stroke: 0.3}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{`width="200mm"`, `height="200mm"`, `viewBox="0 0 20000 20000"`, "stroke-width:30", "Wall Drawing #11"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
	if got, want := strings.Count(out, "<line "), 2+len(a.Segments()); got != want {
		t.Fatalf("svg has %d lines, want %d", got, want)
	}
	if !strings.Contains(out, `<line x1="10000" y1="0" x2="10000" y2="20000"`) {
		t.Error("vertical divider missing from svg")
	}
}

func TestExportGIF(t *testing.T) {
	a := newTestAnimator(t, 200, nil)
	var buf bytes.Buffer
	if err := ExportGIF(&buf, a, 50, 3, 30); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("gif has %d frames, want 3", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 3 {
			t.Errorf("frame %d delay = %d, want 3", i, d)
		}
	}
	if a.Frame() != 3 {
		t.Fatalf("animator at frame %d after recording 3 frames", a.Frame())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	a := newTestAnimator(t, 200, nil)
	if err := writeSVG(failingWriter{}, a, svgOptions{Unit: "px", Stroke: 1}); err == nil {
		t.Fatal("write error swallowed")
	}
}

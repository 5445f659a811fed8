package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(defaultConfig())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlotDryRun(t *testing.T) {
	out, err := runCmd(t, "plot", "--dry-run", "--size", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Dry run: would draw ") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "101.6mm") {
		t.Fatalf("output does not report the canvas size: %q", out)
	}
}

func TestPlotToStdout(t *testing.T) {
	out, err := runCmd(t, "plot", "--frame", "3")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "moveto ") || lines[len(lines)-1] != "moveto 0.000 0.000" {
		t.Fatalf("unexpected plot output: first %q last %q", lines[0], lines[len(lines)-1])
	}
}

func TestExportCommandsWriteFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		args []string
		file string
	}{
		{[]string{"frame", "--px", "64", "--frame", "10"}, "f.png"},
		{[]string{"svg", "--frame", "5", "--size", "2"}, "s.svg"},
		{[]string{"gif", "--frames", "2", "--px", "32"}, "g.gif"},
		{[]string{"plot"}, "p.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if _, err := runCmd(t, append(tt.args, path)...); err != nil {
				t.Fatal(err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Fatalf("%s is empty", path)
			}
		})
	}
}

func TestSVGCommandRespectsSpacingFlag(t *testing.T) {
	dir := t.TempDir()
	wide := filepath.Join(dir, "wide.svg")
	dense := filepath.Join(dir, "dense.svg")
	if _, err := runCmd(t, "svg", wide); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, "--spacing", "0.05", "svg", dense); err != nil {
		t.Fatal(err)
	}
	count := func(path string) int {
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return strings.Count(string(b), "<line ")
	}
	if count(dense) <= count(wide) {
		t.Fatalf("--spacing 0.05 produced %d lines, default produced %d", count(dense), count(wide))
	}
}

func TestRejectsBadSide(t *testing.T) {
	if _, err := runCmd(t, "--side", "-1", "frame", filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("negative side accepted")
	}
}

func TestWindowPixels(t *testing.T) {
	display := func() float64 { return 540.6 }
	tests := []struct {
		name    string
		px      int
		fit     bool
		want    int
		wantErr bool
	}{
		{"flag", 800, false, 800, false},
		{"fit", 800, true, 540, false},
		{"zero", 0, false, 0, true},
		{"negative", -5, false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := windowPixels(tt.px, tt.fit, display)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("windowPixels = %d, want %d", got, tt.want)
			}
		})
	}

	// A tiny canvas side no longer shrinks the window.
	if got, err := windowPixels(defaultImagePixels, false, func() float64 { return 0.4 }); err != nil || got != defaultImagePixels {
		t.Fatalf("windowPixels = %d, %v", got, err)
	}
	if _, err := windowPixels(defaultImagePixels, true, func() float64 { return 0.4 }); err == nil {
		t.Fatal("sub-pixel display accepted")
	}
}

func TestLogClosedWhenCommandFails(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "sol11.log")
	a := newApp(defaultConfig())
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--log", logPath, "--side", "-1", "frame", filepath.Join(dir, "x.png")})
	if err := root.Execute(); err == nil {
		t.Fatal("negative side accepted")
	}
	if a.logClose != nil {
		t.Fatal("log file left open after a failed command")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rejecting canvas side") {
		t.Fatalf("log = %q", data)
	}
}

package main

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Params        Params
	FPS           int
	Side          float64
	LogFile       string
	LogLevel      string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Params:        defaultParams(),
		FPS:           defaultFPS,
		Side:          defaultSide,
		LogLevel:      "info",
	}
}

// loadConfig reads ~/.sol11rc on top of the defaults. A missing or
// unreadable file leaves the defaults in place.
func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	file, err := os.Open(filepath.Join(homeDir, ".sol11rc"))
	if err != nil {
		return config
	}
	defer file.Close()

	config.parse(file, homeDir)
	return config
}

func (c *Config) parse(r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			c.SaveDirectory = expandPath(value, homeDir)
		case "logfile", "log_file", "log":
			c.LogFile = expandPath(value, homeDir)
		case "loglevel", "log_level":
			c.LogLevel = value
		case "fps":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.FPS = n
			}
		case "side", "size":
			setPositive(&c.Side, value)
		case "spacing", "spacingratio", "spacing_ratio":
			setPositive(&c.Params.SpacingRatio, value)
		case "offset", "commonoffset", "common_offset":
			setFloat(&c.Params.CommonOffset, value)
		default:
			c.parseFamilyKey(strings.ToLower(key), value)
		}
	}
}

// parseFamilyKey handles keys like "horizontal_speed" or "diagonal1.phase".
func (c *Config) parseFamilyKey(key, value string) {
	key = strings.NewReplacer(".", "_", "-", "_").Replace(key)
	i := strings.LastIndex(key, "_")
	if i < 0 {
		return
	}
	f, ok := familyByName(key[:i])
	if !ok {
		return
	}
	switch key[i+1:] {
	case "speed":
		setPositive(&c.Params.Speeds[f], value)
	case "phase":
		setFloat(&c.Params.Phases[f], value)
	}
}

func familyByName(name string) (LineFamily, bool) {
	switch name {
	case "horizontal", "h":
		return Horizontal, true
	case "vertical", "v":
		return Vertical, true
	case "diagonal_a", "diagonala", "diagonal1", "diagonal_1":
		return DiagonalA, true
	case "diagonal_b", "diagonalb", "diagonal2", "diagonal_2":
		return DiagonalB, true
	}
	return 0, false
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func setFloat(dst *float64, value string) {
	if v, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*dst = v
	}
}

func setPositive(dst *float64, value string) {
	if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 && !math.IsInf(v, 1) {
		*dst = v
	}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// Package config resolves calculation settings: environment defaults
// (optionally from a .env file) and YAML request files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvLoadFactor = "GORCD_LOAD_FACTOR"
	EnvSamples    = "GORCD_SAMPLES"
	EnvMaxLayers  = "GORCD_MAX_LAYERS"
	EnvAggregate  = "GORCD_AGGREGATE_MM"
	EnvLogLevel   = "GORCD_LOG_LEVEL"
	EnvOutputDir  = "GORCD_OUTPUT_DIR"
)

// Defaults are the settings used when a request leaves them out
type Defaults struct {
	LoadFactor    float64
	Samples       int
	MaxLayers     int
	AggregateSize float64 // mm
	LogLevel      string
	OutputDir     string
}

// Builtin returns the defaults used when nothing is configured
func Builtin() Defaults {
	return Defaults{
		LoadFactor:    1.4,
		Samples:       200,
		MaxLayers:     2,
		AggregateSize: 19,
		LogLevel:      "info",
		OutputDir:     ".",
	}
}

// LoadDefaults loads envFile into the environment when it exists (variables
// already set win) and reads the defaults from the environment.
// A missing file is not an error; a malformed value is.
func LoadDefaults(envFile string) (Defaults, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Defaults{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	d := Builtin()
	var err error
	if d.LoadFactor, err = floatEnv(EnvLoadFactor, d.LoadFactor); err != nil {
		return Defaults{}, err
	}
	if d.Samples, err = intEnv(EnvSamples, d.Samples); err != nil {
		return Defaults{}, err
	}
	if d.MaxLayers, err = intEnv(EnvMaxLayers, d.MaxLayers); err != nil {
		return Defaults{}, err
	}
	if d.AggregateSize, err = floatEnv(EnvAggregate, d.AggregateSize); err != nil {
		return Defaults{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		d.LogLevel = v
	}
	if _, err := ParseLevel(d.LogLevel); err != nil {
		return Defaults{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		d.OutputDir = v
	}
	return d, nil
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

func floatEnv(name string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, v)
	}
	return f, nil
}

func intEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, v)
	}
	return n, nil
}

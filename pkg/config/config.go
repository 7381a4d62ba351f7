// Package config holds the render options that can be set from a TOML
// file and overridden on the command line.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrInvalidOptions is wrapped by every error returned from Validate
var ErrInvalidOptions = errors.New("invalid options")

// Options are the user-facing render options
type Options struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Workers      int    `toml:"workers"`       // 0 = one per CPU
	Seed         int64  `toml:"seed"`          // Shadow jitter seed
	RadiusJitter bool   `toml:"radius_jitter"` // Scale the jitter box by the light radius
	Format       string `toml:"format"`        // Output format; empty = from the output extension
}

// Defaults returns the options used when neither a file nor a flag sets them
func Defaults() Options {
	d := renderer.DefaultConfig()
	return Options{
		Width:   d.Width,
		Height:  d.Height,
		Workers: d.NumWorkers,
		Seed:    d.Seed,
	}
}

// Load reads options from a TOML file on top of the defaults.
// Keys missing from the file keep their default values; unknown keys are an error.
func Load(path string) (Options, error) {
	opts := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return opts, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks the options for values the renderer cannot use
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.Workers)
	}
	if o.Format != "" {
		if _, err := loaders.FormatFromExt(o.Format); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}

// ImageFormat resolves the output format: the explicit Format option if
// set, otherwise the extension of outputPath
func (o Options) ImageFormat(outputPath string) (loaders.ImageFormat, error) {
	if o.Format != "" {
		return loaders.FormatFromExt(o.Format)
	}
	return loaders.FormatFromPath(outputPath)
}

// RenderConfig converts the options to a renderer configuration
func (o Options) RenderConfig() renderer.Config {
	return renderer.Config{
		Width:              o.Width,
		Height:             o.Height,
		NumWorkers:         o.Workers,
		Seed:               o.Seed,
		RadiusScaledJitter: o.RadiusJitter,
	}
}

package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Width              int   // Output image width in pixels
	Height             int   // Output image height in pixels
	NumWorkers         int   // Number of parallel row workers (0 = use CPU count)
	Seed               int64 // Base seed for shadow-ray jitter
	RadiusScaledJitter bool  // Scale the shadow jitter box by each light's radius
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      300,
		Height:     300,
		NumWorkers: 0,
		Seed:       42, // Deterministic for testing
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene into a raster
type Raytracer struct {
	scene  *scene.Scene
	config Config
	logger *slog.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config Config) *Raytracer {
	return &Raytracer{
		scene:  s,
		config: config,
		logger: slog.Default(),
	}
}

// SetLogger replaces the logger used for render progress
func (rt *Raytracer) SetLogger(logger *slog.Logger) {
	rt.logger = logger
}

// Config returns the rendering configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel and returns the finished raster
func (rt *Raytracer) Render(ctx context.Context) (*Raster, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.config.Width, rt.config.Height
	raster := NewRaster(width, height)
	surfaces, materials, lightCount := rt.scene.Counts()

	var rowsDone atomic.Int64
	pool := NewWorkerPool(rt.config.NumWorkers, func(row int) RowResult {
		result := rt.RenderRow(raster, row)
		done := rowsDone.Add(1)
		rt.logger.Debug("row rendered", "row", row, "done", done, "of", height)
		return result
	})

	rt.logger.Info("render started",
		"width", width, "height", height,
		"surfaces", surfaces, "materials", materials, "lights", lightCount,
		"shadowRays", rt.scene.Settings.ShadowRays,
		"maxRecursion", rt.scene.Settings.MaxRecursion,
		"workers", pool.GetNumWorkers())

	start := time.Now()
	results, err := pool.Run(ctx, height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Workers:     pool.GetNumWorkers(),
		Elapsed:     time.Since(start),
	}
	for _, r := range results {
		stats.HitPixels += r.Hits
		stats.Rays.Add(r.Counts)
	}

	rt.logger.Info("render finished",
		"elapsed", stats.Elapsed,
		"coverage", fmt.Sprintf("%.1f%%", 100*stats.Coverage()),
		"rays", stats.TotalRays(),
		"shadowRays", stats.Rays.Shadow)

	return raster, stats, nil
}

// RenderRow renders image row y into raster. Each row has its own
// jitter stream so the output does not depend on worker scheduling.
func (rt *Raytracer) RenderRow(raster *Raster, y int) RowResult {
	shader := NewShader(rt.scene, rt.rowSampler(y), rt.config.RadiusScaledJitter)

	hits := 0
	for x := 0; x < raster.Width; x++ {
		c, hit := rt.tracePixel(shader, x, y, raster.Width, raster.Height)
		if hit {
			hits++
		}
		raster.Set(x, y, c)
	}

	return RowResult{Hits: hits, Counts: shader.Counts()}
}

// TracePixel returns the [0,255] color of output pixel (x, y) using sampler
// for the shadow jitter
func (rt *Raytracer) TracePixel(x, y int, sampler core.Sampler) core.Vec3 {
	shader := NewShader(rt.scene, sampler, rt.config.RadiusScaledJitter)
	c, _ := rt.tracePixel(shader, x, y, rt.config.Width, rt.config.Height)
	return c
}

// tracePixel shades output pixel (x, y). Output columns are mirrored
// relative to camera device columns.
func (rt *Raytracer) tracePixel(shader *Shader, x, y, width, height int) (core.Vec3, bool) {
	ray := rt.scene.Camera.GetRay(width-x-1, y, width, height)
	shader.counts.Primary++

	t, hit := geometry.FindNearest(ray, rt.scene.Surfaces)
	if hit == nil {
		return rt.scene.Settings.Background.Multiply(255), false
	}

	point := ray.At(t)
	normal := hit.Normal(point)
	view := ray.Direction.Negate()

	return shader.Shade(point, normal, view, hit, 0).Multiply(255), true
}

// rowSampler returns the deterministic jitter stream for row y
func (rt *Raytracer) rowSampler(y int) core.Sampler {
	return core.NewSeededSampler(rt.config.Seed + int64(y))
}

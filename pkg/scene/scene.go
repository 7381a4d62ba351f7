package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is wrapped by every error returned from Validate
var ErrInvalidScene = errors.New("invalid scene")

// Settings contains the global scene settings from the `set` directive
type Settings struct {
	Background   core.Vec3 // Color for rays that hit nothing
	ShadowRays   int       // Shadow samples per light (used directly, not squared)
	MaxRecursion int       // Maximum reflection/transmission depth
}

// Scene contains all the elements needed for rendering.
// It is built once and treated as read-only while rendering.
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Settings     Settings
	Surfaces     []geometry.Surface
	Materials    []*material.Phong
	Lights       []*lights.Light
}

// NewScene creates an empty scene with the given settings
func NewScene(settings Settings) *Scene {
	return &Scene{
		Settings:  settings,
		Surfaces:  make([]geometry.Surface, 0),
		Materials: make([]*material.Phong, 0),
		Lights:    make([]*lights.Light, 0),
	}
}

// SetCamera builds the camera from config
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// AddMaterial appends a material and returns its 1-based index
func (s *Scene) AddMaterial(m *material.Phong) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials)
}

// AddSurface appends a surface
func (s *Scene) AddSurface(surface geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surface)
}

// AddLight appends a light
func (s *Scene) AddLight(light *lights.Light) {
	s.Lights = append(s.Lights, light)
}

// MaterialOf returns the material referenced by a surface.
// Validate guarantees the index is in range.
func (s *Scene) MaterialOf(surface geometry.Surface) *material.Phong {
	return s.Materials[surface.MaterialIndex()-1]
}

// Validate checks the scene for configuration errors that would
// otherwise surface in the middle of a render
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera defined", ErrInvalidScene)
	}
	if s.Settings.ShadowRays < 1 {
		return fmt.Errorf("%w: shadow ray count must be at least 1, got %d", ErrInvalidScene, s.Settings.ShadowRays)
	}
	if s.Settings.MaxRecursion < 0 {
		return fmt.Errorf("%w: max recursion must not be negative, got %d", ErrInvalidScene, s.Settings.MaxRecursion)
	}
	if s.CameraConfig.ScreenWidth <= 0 || s.CameraConfig.ScreenDistance <= 0 {
		return fmt.Errorf("%w: camera screen width and distance must be positive", ErrInvalidScene)
	}
	for i, surface := range s.Surfaces {
		idx := surface.MaterialIndex()
		if idx < 1 || idx > len(s.Materials) {
			return fmt.Errorf("%w: surface %d (%T) references material %d, but %d materials are defined",
				ErrInvalidScene, i, surface, idx, len(s.Materials))
		}
	}
	return nil
}

// Counts returns the number of surfaces, materials and lights
func (s *Scene) Counts() (surfaces, materials, lights int) {
	return len(s.Surfaces), len(s.Materials), len(s.Lights)
}

package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a cube and a ground plane
func NewDefaultScene() *Scene {
	s := NewScene(Settings{
		Background:   core.NewVec3(0.6, 0.7, 0.9),
		ShadowRays:   5,
		MaxRecursion: 3,
	})

	s.SetCamera(geometry.CameraConfig{
		Position:       core.NewVec3(0, 1.5, 6),
		LookAt:         core.NewVec3(0, 0.5, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1.4,
		ScreenWidth:    1,
	})

	// Create materials
	ground := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.35, 0.4, 0.3), core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.1, 0.1, 0.1), 10, 0))
	red := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.65, 0.2, 0.15), core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), 30, 0))
	mirror := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(1, 1, 1), core.NewVec3(0.8, 0.8, 0.8), 100, 0))
	glass := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.2, 0.3, 0.5), core.NewVec3(1, 1, 1), core.NewVec3(0.1, 0.1, 0.1), 50, 0.6))
	gold := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.6, 0.45, 0.1), core.NewVec3(0.9, 0.8, 0.4), core.NewVec3(0.3, 0.25, 0.1), 20, 0))

	// Create surfaces
	s.AddSurface(geometry.NewPlane(core.NewVec3(0, 1, 0), -0.5, ground))
	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0.5, 0), 1, red))
	s.AddSurface(geometry.NewSphere(core.NewVec3(-2.2, 0.2, -0.5), 0.7, mirror))
	s.AddSurface(geometry.NewSphere(core.NewVec3(1.6, 0.1, 1.2), 0.6, glass))
	s.AddSurface(geometry.NewCube(core.NewVec3(2.4, 0.1, -1), 1.2, gold))

	// Key light and a dimmer fill light
	s.AddLight(lights.NewLight(core.NewVec3(3, 6, 4), core.NewVec3(1, 1, 1), 1, 0.9, 1))
	s.AddLight(lights.NewLight(core.NewVec3(-4, 4, 2), core.NewVec3(0.4, 0.4, 0.5), 0.5, 0.6, 0.5))

	return s
}

package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from infinite planes with
// a mirror sphere and a transparent cube inside
func NewCornellScene() *Scene {
	s := NewScene(Settings{
		Background:   core.NewVec3(0, 0, 0),
		ShadowRays:   8,
		MaxRecursion: 4,
	})

	s.SetCamera(geometry.CameraConfig{
		Position:       core.NewVec3(0, 0, 9.5),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1.6,
		ScreenWidth:    1,
	})

	// Create materials
	white := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.73, 0.73, 0.73), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), 1, 0))
	red := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.65, 0.05, 0.05), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), 1, 0))
	green := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.12, 0.45, 0.15), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), 1, 0))
	mirror := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(1, 1, 1), core.NewVec3(0.9, 0.9, 0.9), 200, 0))
	glass := s.AddMaterial(material.NewPhong(
		core.NewVec3(0.3, 0.4, 0.5), core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), 80, 0.5))

	// Walls: floor, ceiling, back, left (red), right (green)
	s.AddSurface(geometry.NewPlane(core.NewVec3(0, 1, 0), -2, white))
	s.AddSurface(geometry.NewPlane(core.NewVec3(0, -1, 0), -2, white))
	s.AddSurface(geometry.NewPlane(core.NewVec3(0, 0, 1), -2, white))
	s.AddSurface(geometry.NewPlane(core.NewVec3(1, 0, 0), -2, red))
	s.AddSurface(geometry.NewPlane(core.NewVec3(-1, 0, 0), -2, green))

	s.AddSurface(geometry.NewSphere(core.NewVec3(-0.8, -1.3, -0.6), 0.7, mirror))
	s.AddSurface(geometry.NewCube(core.NewVec3(0.9, -1.4, 0.4), 1.2, glass))

	s.AddLight(lights.NewLight(core.NewVec3(0, 1.8, 0), core.NewVec3(1, 0.95, 0.85), 0.8, 0.85, 0.5))

	return s
}

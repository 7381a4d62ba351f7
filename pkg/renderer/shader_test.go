package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// newShaderScene returns a scene with a camera and the given settings
func newShaderScene(settings scene.Settings) *scene.Scene {
	s := scene.NewScene(settings)
	s.SetCamera(geometry.CameraConfig{
		Position:       core.NewVec3(0, 0, 5),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1,
		ScreenWidth:    1,
	})
	return s
}

func matte(gray float64) *material.Phong {
	return material.NewPhong(core.NewVec3(gray, gray, gray), core.Vec3{}, core.Vec3{}, 1, 0)
}

func assertColorNear(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-9)
	assert.InDelta(t, expected.Y, actual.Y, 1e-9)
	assert.InDelta(t, expected.Z, actual.Z, 1e-9)
}

func TestShader_AmbientOnly(t *testing.T) {
	s := newShaderScene(scene.Settings{ShadowRays: 1, MaxRecursion: 3})
	m := s.AddMaterial(matte(0.4))
	plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
	s.AddSurface(plane)

	shader := NewShader(s, core.ConstantSampler(0.5), false)
	c := shader.Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 0)

	assertColorNear(t, core.NewVec3(0.2, 0.2, 0.2), c)
}

func TestShader_DirectLight(t *testing.T) {
	tests := []struct {
		name            string
		shadowIntensity float64
		occluded        bool
		expected        float64
	}{
		{"lit", 0, false, 0.1 + 0.2*3},
		{"lit half shadow intensity", 0.5, false, 0.1 + 0.2*0.5*3},
		{"occluded", 0, true, 0.1},
		{"full shadow intensity", 1, false, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newShaderScene(scene.Settings{ShadowRays: 4, MaxRecursion: 3})
			m := s.AddMaterial(matte(0.2))
			plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
			s.AddSurface(plane)
			if tt.occluded {
				s.AddSurface(geometry.NewCube(core.NewVec3(0, 2.5, 0), 2, m))
			}
			s.AddLight(lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, tt.shadowIntensity, 1))

			// The constant sampler puts every shadow sample at the light center
			shader := NewShader(s, core.ConstantSampler(0.5), false)
			c := shader.Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 0)

			assertColorNear(t, core.NewVec3(tt.expected, tt.expected, tt.expected), c)
			assert.Equal(t, int64(4), shader.Counts().Shadow)
		})
	}
}

func TestShader_Specular(t *testing.T) {
	s := newShaderScene(scene.Settings{ShadowRays: 1, MaxRecursion: 0})
	m := s.AddMaterial(material.NewPhong(core.Vec3{}, core.NewVec3(0.1, 0.1, 0.1), core.Vec3{}, 5, 0))
	plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
	s.AddSurface(plane)
	s.AddLight(lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 0.5, 0, 1))

	shader := NewShader(s, core.ConstantSampler(0.5), false)

	// Viewer on the mirror direction of the light sees the full highlight
	c := shader.Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 0)
	assertColorNear(t, core.NewVec3(0.15, 0.15, 0.15), c)

	// Viewer below the surface: negative base is treated as no highlight
	c = shader.Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), plane, 0)
	assertColorNear(t, core.Vec3{}, c)
}

func TestShader_ClampsToUnit(t *testing.T) {
	s := newShaderScene(scene.Settings{ShadowRays: 1, MaxRecursion: 0})
	m := s.AddMaterial(matte(1))
	plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
	s.AddSurface(plane)
	s.AddLight(lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(5, 5, 5), 1, 0, 1))

	c := NewShader(s, core.ConstantSampler(0.5), false).
		Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 0)
	assert.Equal(t, core.NewVec3(1, 1, 1), c)
}

func TestShader_BeyondMaxDepthReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.3, 0.4, 2.5)
	s := newShaderScene(scene.Settings{Background: background, ShadowRays: 1, MaxRecursion: 2})
	m := s.AddMaterial(matte(1))
	plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
	s.AddSurface(plane)

	c := NewShader(s, core.ConstantSampler(0.5), false).
		Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 3)

	// Unclamped and unmodified
	assert.Equal(t, background, c)
}

func TestShader_RecursionBounded(t *testing.T) {
	for _, maxRecursion := range []int{0, 1, 2, 3, 5} {
		s := newShaderScene(scene.Settings{ShadowRays: 1, MaxRecursion: maxRecursion})
		// Viewed from above, the reflected ray comes back to the plane from above
		// and the transmitted ray reaches it from below. A surface seen from below
		// still casts both rays, but they leave the plane and miss.
		m := s.AddMaterial(material.NewPhong(
			core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 10, 0.5))
		plane := geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m)
		s.AddSurface(plane)
		s.AddLight(lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 0, 1))

		shader := NewShader(s, core.NewSeededSampler(1), false)
		c := shader.Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), plane, 0)

		counts := shader.Counts()
		assert.Equal(t, maxRecursion, counts.MaxDepth, "max recursion %d", maxRecursion)
		expected := int64(0)
		if maxRecursion > 0 {
			expected = int64(2*maxRecursion - 1)
		}
		assert.Equal(t, expected, counts.Reflection, "max recursion %d", maxRecursion)
		assert.Equal(t, expected, counts.Transmission, "max recursion %d", maxRecursion)
		assert.False(t, math.IsNaN(c.X))
	}
}

func TestShader_ReflectionAndTransmission(t *testing.T) {
	// A matte 0.8 sphere above the origin is the only thing secondary rays can hit
	newScene := func(withSphere bool, surfaceMat *material.Phong, normal core.Vec3) (*scene.Scene, geometry.Surface) {
		s := newShaderScene(scene.Settings{ShadowRays: 1, MaxRecursion: 2})
		m := s.AddMaterial(surfaceMat)
		other := s.AddMaterial(matte(0.8))
		plane := geometry.NewPlane(normal, 0, m)
		s.AddSurface(plane)
		if withSphere {
			s.AddSurface(geometry.NewSphere(core.NewVec3(0, 3, 0), 1, other))
		}
		return s, plane
	}

	t.Run("reflection hit adds scaled color", func(t *testing.T) {
		mat := material.NewPhong(core.NewVec3(0.4, 0.4, 0.4), core.Vec3{}, core.NewVec3(0.5, 0.5, 0.5), 1, 0)
		s, plane := newScene(true, mat, core.NewVec3(0, 1, 0))

		// Viewer below: reflect(view, n) points up toward the sphere
		c := NewShader(s, core.ConstantSampler(0.5), false).
			Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), plane, 0)
		assertColorNear(t, core.NewVec3(0.4, 0.4, 0.4), c) // 0.2 + 0.4*0.5
	})

	t.Run("reflection miss adds nothing", func(t *testing.T) {
		mat := material.NewPhong(core.NewVec3(0.4, 0.4, 0.4), core.Vec3{}, core.NewVec3(0.5, 0.5, 0.5), 1, 0)
		s, plane := newScene(false, mat, core.NewVec3(0, 1, 0))

		c := NewShader(s, core.ConstantSampler(0.5), false).
			Shade(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), plane, 0)
		assertColorNear(t, core.NewVec3(0.2, 0.2, 0.2), c)
	})

	t.Run("transmission hit blends", func(t *testing.T) {
		mat := material.NewPhong(core.NewVec3(0.4, 0.4, 0.4), core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0.5)
		s, plane := newScene(true, mat, core.NewVec3(0, -1, 0))

		// Viewer above a downward-facing plane: transmission continues up to
		// the sphere, reflection heads down and misses
		c := NewShader(s, core.ConstantSampler(0.5), false).
			Shade(core.Vec3{}, core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), plane, 0)
		assertColorNear(t, core.NewVec3(0.3, 0.3, 0.3), c) // 0.2*0.5 + 0.4*0.5
	})

	t.Run("transmission miss leaves color unscaled", func(t *testing.T) {
		mat := material.NewPhong(core.NewVec3(0.4, 0.4, 0.4), core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0.5)
		s, plane := newScene(false, mat, core.NewVec3(0, -1, 0))

		c := NewShader(s, core.ConstantSampler(0.5), false).
			Shade(core.Vec3{}, core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), plane, 0)
		assertColorNear(t, core.NewVec3(0.2, 0.2, 0.2), c)
	})
}

func TestShader_SampleLight_Endpoints(t *testing.T) {
	for _, samples := range []int{1, 7, 64} {
		s := newShaderScene(scene.Settings{ShadowRays: samples, MaxRecursion: 1})
		m := s.AddMaterial(matte(0.5))
		s.AddSurface(geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m))
		light := lights.NewLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 0, 3)
		s.AddLight(light)

		shader := NewShader(s, core.NewSeededSampler(int64(samples)), false)
		intensity, dir := shader.sampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), light)
		assert.Equal(t, 1.0, intensity, "unobstructed, %d samples", samples)
		assert.InDelta(t, 1, dir.Length(), 1e-12)

		s.AddSurface(geometry.NewCube(core.NewVec3(0, 2.5, 0), 2, m))
		intensity, _ = shader.sampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), light)
		assert.Equal(t, 0.0, intensity, "obstructed, %d samples", samples)
	}
}

func TestShader_SampleLight_Partial(t *testing.T) {
	// A thin blocker covering half the jitter box gives a fractional intensity
	s := newShaderScene(scene.Settings{ShadowRays: 256, MaxRecursion: 1})
	m := s.AddMaterial(matte(0.5))
	s.AddSurface(geometry.NewPlane(core.NewVec3(0, 1, 0), 0, m))
	s.AddSurface(geometry.NewCube(core.NewVec3(-1, 5, 0), 2, m))
	light := lights.NewLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1), 1, 0, 1)
	s.AddLight(light)

	shader := NewShader(s, core.NewSeededSampler(3), false)
	intensity, _ := shader.sampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), light)

	require.Greater(t, intensity, 0.0)
	require.Less(t, intensity, 1.0)
	assert.InDelta(t, 0.5, intensity, 0.15)
}

func TestPhong(t *testing.T) {
	assert.Equal(t, 0.0, phong(-0.5, 3))
	assert.Equal(t, 0.0, phong(math.NaN(), 2))
	assert.InDelta(t, 0.25, phong(0.5, 2), 1e-12)
	assert.Equal(t, 1.0, phong(1, 100))
}

func TestLightIntensity(t *testing.T) {
	assert.Equal(t, 1.0, LightIntensity(5, 5))
	assert.Equal(t, 0.0, LightIntensity(0, 5))
	assert.Equal(t, 0.4, LightIntensity(2, 5))
	assert.Equal(t, 0.0, LightIntensity(0, 0))
}

package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// surfaceEpsilon offsets secondary ray origins off the surface
	surfaceEpsilon = 1e-5
	// brightnessScale multiplies every direct light contribution
	brightnessScale = 3.0
)

// ambientIntensity is the constant global illumination floor
var ambientIntensity = core.NewVec3(0.5, 0.5, 0.5)

// RayCounts tallies the rays traced while shading
type RayCounts struct {
	Primary      int64
	Shadow       int64
	Reflection   int64
	Transmission int64
	MaxDepth     int // Deepest recursion depth at which Shade was entered
}

// Add accumulates other into c
func (c *RayCounts) Add(other RayCounts) {
	c.Primary += other.Primary
	c.Shadow += other.Shadow
	c.Reflection += other.Reflection
	c.Transmission += other.Transmission
	c.MaxDepth = max(c.MaxDepth, other.MaxDepth)
}

// Shader evaluates the recursive local illumination model for one
// stream of samples. A Shader is not safe for concurrent use; the scene
// it reads is.
type Shader struct {
	scene        *scene.Scene
	sampler      core.Sampler
	radiusJitter bool
	counts       RayCounts
}

// NewShader creates a shader reading from s and drawing light samples from sampler
func NewShader(s *scene.Scene, sampler core.Sampler, radiusJitter bool) *Shader {
	return &Shader{
		scene:        s,
		sampler:      sampler,
		radiusJitter: radiusJitter,
	}
}

// Counts returns the rays traced so far
func (s *Shader) Counts() RayCounts {
	return s.counts
}

// Shade returns the clamped color seen at point on surface from the view
// direction (pointing from the surface toward the viewer).
func (s *Shader) Shade(point, normal, view core.Vec3, surface geometry.Surface, depth int) core.Vec3 {
	settings := s.scene.Settings
	if depth > settings.MaxRecursion {
		return settings.Background
	}
	s.counts.MaxDepth = max(s.counts.MaxDepth, depth)

	mat := s.scene.MaterialOf(surface)
	color := mat.Diffuse.MultiplyVec(ambientIntensity)

	for _, light := range s.scene.Lights {
		color = color.Add(s.directLight(point, normal, view, mat, light))
	}

	if depth < settings.MaxRecursion && mat.IsReflective() {
		reflected := core.NewRay(point.Add(normal.Multiply(surfaceEpsilon)), core.Reflect(view, normal))
		s.counts.Reflection++
		if c, ok := s.trace(reflected, depth+1); ok {
			color = color.Add(c.Multiply(mat.ReflectionCoefficient()))
		}
	}

	if depth < settings.MaxRecursion && mat.IsTransparent() {
		// No bending: the ray continues along the view direction from just behind the surface
		transmitted := core.NewRay(point.Subtract(normal.Multiply(surfaceEpsilon)), view)
		s.counts.Transmission++
		if c, ok := s.trace(transmitted, depth+1); ok {
			color = color.Multiply(1 - mat.Transparency).Add(c.Multiply(mat.Transparency))
		}
	}

	return color.Clamp(0, 1)
}

// trace shades the nearest hit along ray. It reports false on a miss.
func (s *Shader) trace(ray core.Ray, depth int) (core.Vec3, bool) {
	t, hit := geometry.FindNearest(ray, s.scene.Surfaces)
	if hit == nil {
		return core.Vec3{}, false
	}
	point := ray.At(t)
	return s.Shade(point, hit.Normal(point), ray.Direction.Negate(), hit, depth), true
}

// directLight returns the diffuse and specular contribution of one light,
// attenuated by the fraction of unoccluded shadow samples
func (s *Shader) directLight(point, normal, view core.Vec3, mat *material.Phong, light *lights.Light) core.Vec3 {
	intensity, lightDir := s.sampleLight(point, normal, light)

	// Diffuse and specular use the direction of the last shadow sample
	diffuse := mat.Diffuse.MultiplyVec(light.Color).Multiply(max(normal.Dot(lightDir), 0))

	reflected := core.Reflect(lightDir.Negate(), normal)
	highlight := phong(reflected.Dot(view), mat.Shininess)
	specular := mat.Specular.MultiplyVec(light.Color).Multiply(highlight * light.SpecularIntensity)

	return diffuse.Add(specular).Multiply(intensity * (1 - light.ShadowIntensity) * brightnessScale)
}

// sampleLight casts the configured number of shadow rays toward jittered
// points around light. It returns the lit fraction and the direction to
// the last sample.
func (s *Shader) sampleLight(point, normal core.Vec3, light *lights.Light) (float64, core.Vec3) {
	samples := s.scene.Settings.ShadowRays
	origin := point.Add(normal.Multiply(surfaceEpsilon))

	lit := 0
	var lightDir core.Vec3
	for i := 0; i < samples; i++ {
		sample := light.Sample(s.sampler, s.radiusJitter)
		toLight := sample.Subtract(point)
		lightDir = toLight.Normalize()

		s.counts.Shadow++
		t, blocker := geometry.FindNearest(core.NewRay(origin, lightDir), s.scene.Surfaces)
		if blocker == nil || t > toLight.Length() {
			lit++
		}
	}

	return LightIntensity(lit, samples), lightDir
}

// LightIntensity is the fraction of lit shadow samples
func LightIntensity(lit, samples int) float64 {
	if samples <= 0 {
		return 0
	}
	return float64(lit) / float64(samples)
}

// phong raises base to shininess, mapping negative or NaN bases and NaN results to 0
func phong(base, shininess float64) float64 {
	if math.IsNaN(base) || base < 0 {
		return 0
	}
	v := math.Pow(base, shininess)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

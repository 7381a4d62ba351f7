package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Phong holds the per-surface optical properties used by the shading engine.
// Colors are nominally in [0,1] but are not clamped here.
type Phong struct {
	Diffuse      core.Vec3 // Lambertian and ambient reflectance
	Specular     core.Vec3 // Phong highlight color
	Reflection   core.Vec3 // Mirror reflection color
	Shininess    float64   // Phong exponent
	Transparency float64   // Fraction of light transmitted, in [0,1]
}

// NewPhong creates a new Phong material
func NewPhong(diffuse, specular, reflection core.Vec3, shininess, transparency float64) *Phong {
	return &Phong{
		Diffuse:      diffuse,
		Specular:     specular,
		Reflection:   reflection,
		Shininess:    shininess,
		Transparency: transparency,
	}
}

// ReflectionCoefficient reduces the reflection color to a scalar (channel mean)
func (m *Phong) ReflectionCoefficient() float64 {
	return m.Reflection.Mean()
}

// IsReflective reports whether reflected rays should be spawned
func (m *Phong) IsReflective() bool {
	return m.ReflectionCoefficient() > 0
}

// IsTransparent reports whether transmitted rays should be spawned
func (m *Phong) IsTransparent() bool {
	return m.Transparency > 0
}

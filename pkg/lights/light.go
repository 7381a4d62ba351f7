package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// JitterExtent is the half-width of the box that shadow-ray samples are
// drawn from around a light's position.
const JitterExtent = 0.25

// Light is a point light with a soft-shadow sampling region
type Light struct {
	Position          core.Vec3
	Color             core.Vec3
	SpecularIntensity float64
	ShadowIntensity   float64 // 0 leaves shadowed points unattenuated, 1 fully attenuates
	Radius            float64
}

// NewLight creates a new light
func NewLight(position, color core.Vec3, specularIntensity, shadowIntensity, radius float64) *Light {
	return &Light{
		Position:          position,
		Color:             color,
		SpecularIntensity: specularIntensity,
		ShadowIntensity:   shadowIntensity,
		Radius:            radius,
	}
}

// Sample returns a jittered point around the light position.
// The offset on each axis is uniform in [-JitterExtent, JitterExtent]
// regardless of the light radius. When scaleByRadius is set the box is
// additionally scaled by Radius.
func (l *Light) Sample(sampler core.Sampler, scaleByRadius bool) core.Vec3 {
	u := sampler.Get3D()
	extent := JitterExtent
	if scaleByRadius {
		extent *= l.Radius
	}
	offset := core.NewVec3(
		(2*u.X-1)*extent,
		(2*u.Y-1)*extent,
		(2*u.Z-1)*extent,
	)
	return l.Position.Add(offset)
}

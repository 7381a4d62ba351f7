package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// parallelEpsilon is the |n·d| threshold below which a ray counts as parallel
const parallelEpsilon = 1e-6

// Plane represents an infinite plane {p : UnitNormal·p = Offset}
type Plane struct {
	UnitNormal core.Vec3
	Offset     float64 // Signed distance from the origin along UnitNormal
	Material   int
}

// NewPlane creates a new plane. A non-unit normal is normalized and the
// offset rescaled by the same factor so the plane itself is unchanged.
func NewPlane(normal core.Vec3, offset float64, material int) *Plane {
	length := normal.Length()
	if length > 0 && length != 1 {
		normal = normal.Multiply(1 / length)
		offset /= length
	}
	return &Plane{
		UnitNormal: normal,
		Offset:     offset,
		Material:   material,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := p.UnitNormal.Dot(ray.Direction)

	// Ray is parallel to plane (no intersection)
	if math.Abs(denominator) <= parallelEpsilon {
		return 0, false
	}

	t := (p.Offset - p.UnitNormal.Dot(ray.Origin)) / denominator
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Normal returns the stored plane normal. It does not flip toward the viewer.
func (p *Plane) Normal(point core.Vec3) core.Vec3 {
	return p.UnitNormal
}

// MaterialIndex returns the 1-based material index
func (p *Plane) MaterialIndex() int {
	return p.Material
}

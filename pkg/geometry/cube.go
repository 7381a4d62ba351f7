package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube represents an axis-aligned cube with uniform edge length
type Cube struct {
	Center   core.Vec3
	Scale    float64   // Edge length
	Min      core.Vec3 // Minimum corner
	Max      core.Vec3 // Maximum corner
	Material int
}

// NewCube creates a new axis-aligned cube centered at center
func NewCube(center core.Vec3, scale float64, material int) *Cube {
	half := scale / 2
	extent := core.NewVec3(half, half, half)
	return &Cube{
		Center:   center,
		Scale:    scale,
		Min:      center.Subtract(extent),
		Max:      center.Add(extent),
		Material: material,
	}
}

// Intersect tests the ray against the cube using the slab method.
// If the origin is inside the cube the exit distance is returned.
func (c *Cube) Intersect(ray core.Ray) (float64, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		lo := c.Min.Component(axis)
		hi := c.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Ray parallel to this slab: the entry/exit pair is (-Inf, +Inf)
		// when the origin lies between the planes, otherwise it never enters.
		// Dividing would give 0/0 = NaN for an origin exactly on a plane.
		if direction == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
	}

	if tNear > tFar || tFar < 0 {
		return 0, false
	}
	if tNear >= 0 {
		return tNear, true
	}
	return tFar, true
}

// Normal returns the signed axis of the largest component of point-center.
// Near edges and corners the choice is ambiguous; ties go to the lower axis.
func (c *Cube) Normal(point core.Vec3) core.Vec3 {
	delta := point.Subtract(c.Center)

	axis := 0
	largest := math.Abs(delta.X)
	if math.Abs(delta.Y) > largest {
		axis, largest = 1, math.Abs(delta.Y)
	}
	if math.Abs(delta.Z) > largest {
		axis = 2
	}

	s := sign(delta.Component(axis))
	switch axis {
	case 0:
		return core.NewVec3(s, 0, 0)
	case 1:
		return core.NewVec3(0, s, 0)
	default:
		return core.NewVec3(0, 0, s)
	}
}

// MaterialIndex returns the 1-based material index
func (c *Cube) MaterialIndex() int {
	return c.Material
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

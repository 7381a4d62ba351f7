package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Surface is anything the renderer can intersect and shade.
// MaterialIndex is 1-based into the scene's material list.
type Surface interface {
	Intersect(ray core.Ray) (float64, bool)
	Normal(point core.Vec3) core.Vec3
	MaterialIndex() int
}

// FindNearest returns the closest surface hit by ray and its distance.
// Ties keep the surface that comes first in the list. On a miss it
// returns (+Inf, nil).
func FindNearest(ray core.Ray, surfaces []Surface) (float64, Surface) {
	nearestT := math.Inf(1)
	var nearest Surface

	for _, s := range surfaces {
		if t, ok := s.Intersect(ray); ok && t < nearestT {
			nearestT = t
			nearest = s
		}
	}

	return nearestT, nearest
}

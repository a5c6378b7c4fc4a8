package scene

import "github.com/achilleasa/radiant/types"

// A ray with a unit length direction. Rays are values; tracers build a new
// ray for every bounce instead of mutating a shared one.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Create a ray normalizing its direction.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir.Normalize(),
	}
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

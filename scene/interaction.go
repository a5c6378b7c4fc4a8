package scene

import (
	"math"

	"github.com/achilleasa/radiant/types"
)

// SurfaceSide classifies a hit against the geometric orientation of the
// triangle that was hit.
type SurfaceSide uint8

const (
	// The ray arrived against the geometric normal.
	Front SurfaceSide = iota

	// The ray arrived along the geometric normal.
	Back

	// The ray was parallel to the surface.
	NonApplicable
)

func (s SurfaceSide) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	}
	return "n/a"
}

// Interaction describes a ray-triangle hit.
type Interaction struct {
	// Hit point and its distance along the ray.
	Point types.Vec3
	T     float32

	// Barycentric coordinates of the hit; U weights the second and V the
	// third triangle vertex.
	U float32
	V float32

	Side SurfaceSide

	// Shading normal facing the incoming ray and the tangents that complete
	// an orthonormal frame with it. Until InterpolateNormal is called the
	// normal is the oriented geometric normal.
	Normal types.Vec3
	E1     types.Vec3
	E2     types.Vec3
}

// Replace the shading normal with the barycentric interpolation of the
// triangle vertex normals and rebuild the tangent frame. For back-side hits
// the interpolated normal is flipped so it faces the incoming ray.
func (in *Interaction) InterpolateNormal(vertexNormals [3]types.Vec3) {
	w := 1 - in.U - in.V
	n := vertexNormals[0].Mul(w).
		Add(vertexNormals[1].Mul(in.U)).
		Add(vertexNormals[2].Mul(in.V)).
		Normalize()

	// Degenerate normal data; keep the geometric normal
	if n == (types.Vec3{}) {
		return
	}

	if in.Side == Back {
		n = n.Neg()
	}

	in.setNormal(n)
}

// Get the orthonormal frame at the hit point.
func (in *Interaction) Triad() (point, normal, e1, e2 types.Vec3) {
	return in.Point, in.Normal, in.E1, in.E2
}

func (in *Interaction) setNormal(n types.Vec3) {
	in.Normal = n
	in.E1, in.E2 = orthonormalBasis(n)
}

// Build two tangents that form a right-handed orthonormal frame with n
// (Duff et al., "Building an Orthonormal Basis, Revisited").
func orthonormalBasis(n types.Vec3) (e1, e2 types.Vec3) {
	sign := float32(math.Copysign(1, float64(n[2])))
	a := -1 / (sign + n[2])
	b := n[0] * n[1] * a
	e1 = types.Vec3{1 + sign*n[0]*n[0]*a, sign * b, -sign * n[0]}
	e2 = types.Vec3{b, sign + n[1]*n[1]*a, -n[1]}
	return e1, e2
}

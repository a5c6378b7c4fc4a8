package scene

import "github.com/achilleasa/radiant/types"

// An emissive primitive.
type EmissivePrimitive struct {
	// The triangle index for this emissive.
	PrimitiveIndex uint32

	// The area of the emissive primitive.
	Area float32
}

// Get the three vertices of a triangle.
func (sc *Scene) Triangle(triIndex uint32) [3]types.Vec3 {
	base := 3 * triIndex
	return [3]types.Vec3{
		sc.VertexList[base],
		sc.VertexList[base+1],
		sc.VertexList[base+2],
	}
}

// Get the per-vertex normals of a triangle.
func (sc *Scene) VertexNormals(triIndex uint32) [3]types.Vec3 {
	base := 3 * triIndex
	return [3]types.Vec3{
		sc.NormalList[base],
		sc.NormalList[base+1],
		sc.NormalList[base+2],
	}
}

// Get the unnormalized geometric normal of a triangle. Its length equals
// twice the triangle area; counter-clockwise vertices face the viewer.
func TriangleNormal(v [3]types.Vec3) types.Vec3 {
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}

// Get the area of a triangle.
func TriangleArea(v [3]types.Vec3) float32 {
	return 0.5 * TriangleNormal(v).Len()
}

package scene

import (
	"math"

	"github.com/achilleasa/radiant/types"
)

const (
	// Hits closer than this distance along the ray are ignored.
	minHitDistance float32 = 1e-6

	// Triangles whose determinant falls below this threshold are treated as
	// parallel to the ray and never reported as hits.
	detEpsilon float32 = 1e-9

	// Hits whose |cos| between the ray and the geometric normal falls below
	// this threshold are classified as NonApplicable.
	grazingCosEpsilon float32 = 1e-6

	// The shadow ray is shortened by this relative amount so it does not hit
	// the surface containing the target point.
	shadowRayShrink float32 = 1e-3
)

// TraversalStack is caller-owned scratch space for BVH traversal. Reusing the
// same stack across calls avoids allocations in the tracing loop. A stack
// must not be shared between goroutines.
type TraversalStack struct {
	nodes []uint32
}

// Allocate a traversal stack.
func NewTraversalStack() *TraversalStack {
	return &TraversalStack{
		nodes: make([]uint32, 0, 64),
	}
}

type hitRecord struct {
	triIndex uint32
	t, u, v  float32
}

// Find the nearest triangle hit by ray. The returned interaction carries the
// geometric normal oriented towards the ray origin; callers that need smooth
// shading should call InterpolateNormal with the triangle's vertex normals.
func (sc *Scene) CastRay(ray Ray, aux *TraversalStack) (uint32, Interaction, bool) {
	hit, found := sc.traverse(ray, math.MaxFloat32, false, aux)
	if !found {
		return 0, Interaction{}, false
	}

	in := Interaction{
		Point: ray.At(hit.t),
		T:     hit.t,
		U:     hit.u,
		V:     hit.v,
	}

	geomNormal := TriangleNormal(sc.Triangle(hit.triIndex)).Normalize()
	cosTheta := ray.Dir.Dot(geomNormal)
	switch {
	case float32(math.Abs(float64(cosTheta))) < grazingCosEpsilon:
		in.Side = NonApplicable
		in.setNormal(geomNormal)
	case cosTheta < 0:
		in.Side = Front
		in.setNormal(geomNormal)
	default:
		in.Side = Back
		in.setNormal(geomNormal.Neg())
	}

	return hit.triIndex, in, true
}

// Returns true if any triangle blocks the segment between from and to.
func (sc *Scene) Occluded(from, to types.Vec3, aux *TraversalStack) bool {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= minHitDistance {
		return false
	}

	ray := Ray{Origin: from, Dir: delta.Mul(1 / dist)}
	_, found := sc.traverse(ray, dist*(1-shadowRayShrink), true, aux)
	return found
}

// Walk the BVH looking for the closest hit in (minHitDistance, tMax). If
// anyHit is set the walk stops at the first hit found.
func (sc *Scene) traverse(ray Ray, tMax float32, anyHit bool, aux *TraversalStack) (hitRecord, bool) {
	var best hitRecord
	found := false
	if len(sc.BvhNodeList) == 0 {
		return best, false
	}

	if aux == nil {
		aux = NewTraversalStack()
	}

	invDir := types.Vec3{1 / ray.Dir[0], 1 / ray.Dir[1], 1 / ray.Dir[2]}
	closest := tMax

	stack := append(aux.nodes[:0], 0)
	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &sc.BvhNodeList[nodeIndex]
		if !node.intersects(ray.Origin, invDir, closest) {
			continue
		}

		if !node.IsLeaf() {
			left, right := node.GetChildNodes()
			stack = append(stack, right, left)
			continue
		}

		first, count := node.GetPrimitives()
		for triIndex := first; triIndex < first+count; triIndex++ {
			t, u, v, ok := sc.intersectTriangle(triIndex, ray, closest)
			if !ok {
				continue
			}

			closest = t
			best = hitRecord{triIndex: triIndex, t: t, u: u, v: v}
			found = true
			if anyHit {
				aux.nodes = stack[:0]
				return best, true
			}
		}
	}

	// Keep any capacity the stack gained for the next call
	aux.nodes = stack[:0]
	return best, found
}

// Möller-Trumbore ray/triangle intersection.
func (sc *Scene) intersectTriangle(triIndex uint32, ray Ray, tMax float32) (t, u, v float32, ok bool) {
	verts := sc.Triangle(triIndex)
	edge1 := verts[1].Sub(verts[0])
	edge2 := verts[2].Sub(verts[0])

	h := ray.Dir.Cross(edge2)
	det := edge1.Dot(h)
	if det > -detEpsilon && det < detEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1 / det
	s := ray.Origin.Sub(verts[0])
	u = invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = invDet * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = invDet * edge2.Dot(q)
	if t <= minHitDistance || t >= tMax {
		return 0, 0, 0, false
	}

	return t, u, v, true
}

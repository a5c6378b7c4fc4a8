package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

// Build a scene whose triangles all live in a single BVH leaf.
func makeTestScene(tris [][3]types.Vec3, frontMat, backMat []uint32, materials []Material) *Scene {
	sc := &Scene{
		Materials:          materials,
		FrontMaterialIndex: frontMat,
		BackMaterialIndex:  backMat,
	}

	bbox := [2]types.Vec3{
		{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, tri := range tris {
		n := TriangleNormal(tri).Normalize()
		for _, v := range tri {
			sc.VertexList = append(sc.VertexList, v)
			sc.NormalList = append(sc.NormalList, n)
			bbox[0] = types.MinVec3(bbox[0], v)
			bbox[1] = types.MaxVec3(bbox[1], v)
		}
	}

	var leaf BvhNode
	leaf.SetBBox(bbox)
	leaf.SetPrimitives(0, uint32(len(tris)))
	sc.BvhNodeList = []BvhNode{leaf}
	return sc
}

// A unit quad in the z = depth plane facing +z.
func quadAt(depth float32) [][3]types.Vec3 {
	return [][3]types.Vec3{
		{{-1, -1, depth}, {1, -1, depth}, {1, 1, depth}},
		{{-1, -1, depth}, {1, 1, depth}, {-1, 1, depth}},
	}
}

func testMaterials() []Material {
	return []Material{
		{Name: "red", Kind: Diffuse, Colour: spectrum.RGB(0.8, 0.1, 0.1)},
		{Name: "green", Kind: Diffuse, Colour: spectrum.RGB(0.1, 0.8, 0.1)},
		{Name: "light", Kind: Emissive, Colour: spectrum.Gray(5)},
	}
}

func TestCastRayNearestHit(t *testing.T) {
	tris := append(quadAt(-5), quadAt(-2)...)
	sc := makeTestScene(tris, []uint32{0, 0, 1, 1}, []uint32{0, 0, 1, 1}, testMaterials())
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	aux := NewTraversalStack()
	triIndex, in, hit := sc.CastRay(NewRay(types.Vec3{0.2, 0.3, 0}, types.Vec3{0, 0, -1}), aux)
	if !hit {
		t.Fatal("expected ray to hit the scene")
	}
	if triIndex != 2 && triIndex != 3 {
		t.Fatalf("expected to hit one of the nearest quad triangles (2, 3); got %d", triIndex)
	}
	if math.Abs(float64(in.T-2)) > 1e-5 {
		t.Fatalf("expected hit distance to be 2; got %f", in.T)
	}
	if exp := (types.Vec3{0.2, 0.3, -2}); !types.ApproxEqual(in.Point, exp, 1e-5) {
		t.Fatalf("expected hit point to be %v; got %v", exp, in.Point)
	}
	if in.Side != Front {
		t.Fatalf("expected hit side to be %s; got %s", Front, in.Side)
	}
	if mat := sc.MaterialFor(triIndex, in.Side); mat.Name != "green" {
		t.Fatalf("expected material to be green; got %s", mat.Name)
	}
}

func TestCastRaySideClassification(t *testing.T) {
	sc := makeTestScene(quadAt(0), []uint32{0, 0}, []uint32{1, 1}, testMaterials())
	aux := NewTraversalStack()

	type spec struct {
		origin    types.Vec3
		dir       types.Vec3
		expSide   SurfaceSide
		expNormal types.Vec3
		expMat    string
	}
	specs := []spec{
		{types.Vec3{0.1, -0.2, 3}, types.Vec3{0, 0, -1}, Front, types.Vec3{0, 0, 1}, "red"},
		{types.Vec3{0.1, -0.2, -3}, types.Vec3{0, 0, 1}, Back, types.Vec3{0, 0, -1}, "green"},
		{types.Vec3{0.5, 0, 3}, types.Vec3{-0.1, 0, -1}, Front, types.Vec3{0, 0, 1}, "red"},
	}

	for index, s := range specs {
		triIndex, in, hit := sc.CastRay(NewRay(s.origin, s.dir), aux)
		if !hit {
			t.Fatalf("[spec %d] expected a hit", index)
		}
		if in.Side != s.expSide {
			t.Fatalf("[spec %d] expected side %s; got %s", index, s.expSide, in.Side)
		}
		if !types.ApproxEqual(in.Normal, s.expNormal, 1e-6) {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, in.Normal)
		}
		if mat := sc.MaterialFor(triIndex, in.Side); mat.Name != s.expMat {
			t.Fatalf("[spec %d] expected material %s; got %s", index, s.expMat, mat.Name)
		}
	}

	if mat := sc.MaterialFor(0, NonApplicable); mat != nil {
		t.Fatalf("expected no material for non-applicable hits; got %v", mat)
	}
}

func TestCastRayMiss(t *testing.T) {
	sc := makeTestScene(quadAt(-2), []uint32{0, 0}, []uint32{0, 0}, testMaterials())

	specs := []Ray{
		NewRay(types.Vec3{0, 0, 0}, types.Vec3{0, 0, 1}),
		NewRay(types.Vec3{5, 5, 0}, types.Vec3{0, 0, -1}),
		NewRay(types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}),
	}
	for index, ray := range specs {
		if _, _, hit := sc.CastRay(ray, nil); hit {
			t.Fatalf("[spec %d] expected ray to miss", index)
		}
	}

	empty := &Scene{}
	if _, _, hit := empty.CastRay(specs[0], nil); hit {
		t.Fatal("expected ray to miss an empty scene")
	}
}

func TestOccluded(t *testing.T) {
	sc := makeTestScene(quadAt(0), []uint32{0, 0}, []uint32{0, 0}, testMaterials())
	aux := NewTraversalStack()

	if !sc.Occluded(types.Vec3{0.2, -0.1, 1}, types.Vec3{0.2, -0.1, -1}, aux) {
		t.Fatal("expected segment crossing the quad to be occluded")
	}
	if sc.Occluded(types.Vec3{0, 0, 1}, types.Vec3{0, 0, 3}, aux) {
		t.Fatal("expected segment in front of the quad not to be occluded")
	}

	// A segment ending on the quad surface must not be blocked by the quad itself
	if sc.Occluded(types.Vec3{0, 0, 1}, types.Vec3{0.5, 0.5, 0}, aux) {
		t.Fatal("expected segment ending on the quad not to be occluded")
	}
}

func TestInterpolateNormal(t *testing.T) {
	normals := [3]types.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	type spec struct {
		u, v float32
		side SurfaceSide
		exp  types.Vec3
	}
	specs := []spec{
		{0, 0, Front, types.Vec3{1, 0, 0}},
		{1, 0, Front, types.Vec3{0, 1, 0}},
		{0, 1, Front, types.Vec3{0, 0, 1}},
		{0, 1, Back, types.Vec3{0, 0, -1}},
		{0.5, 0.5, Front, types.Vec3{0, 0.70710678, 0.70710678}},
	}

	for index, s := range specs {
		in := Interaction{U: s.u, V: s.v, Side: s.side}
		in.setNormal(types.Vec3{0, 0, 1})
		in.InterpolateNormal(normals)

		_, n, e1, e2 := in.Triad()
		if !types.ApproxEqual(n, s.exp, 1e-5) {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.exp, n)
		}
		assertOrthonormal(t, index, n, e1, e2)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	specs := []types.Vec3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{0.3, -0.4, 0.866},
		types.Vec3{-1, 2, -3}.Normalize(),
	}
	for index, n := range specs {
		n = n.Normalize()
		e1, e2 := orthonormalBasis(n)
		assertOrthonormal(t, index, n, e1, e2)

		// The frame must be right-handed so ToWorld maps +Z to the normal
		if cross := e1.Cross(e2); !types.ApproxEqual(cross, n, 1e-5) {
			t.Fatalf("[spec %d] expected e1 x e2 = n (%v); got %v", index, n, cross)
		}
	}
}

func assertOrthonormal(t *testing.T, index int, n, e1, e2 types.Vec3) {
	t.Helper()
	for _, v := range []types.Vec3{n, e1, e2} {
		if l := v.Len(); math.Abs(float64(l-1)) > 1e-5 {
			t.Fatalf("[spec %d] expected unit length frame vector; got %v (len %f)", index, v, l)
		}
	}
	if d := n.Dot(e1); math.Abs(float64(d)) > 1e-5 {
		t.Fatalf("[spec %d] expected n and e1 to be orthogonal; dot = %f", index, d)
	}
	if d := n.Dot(e2); math.Abs(float64(d)) > 1e-5 {
		t.Fatalf("[spec %d] expected n and e2 to be orthogonal; dot = %f", index, d)
	}
	if d := e1.Dot(e2); math.Abs(float64(d)) > 1e-5 {
		t.Fatalf("[spec %d] expected e1 and e2 to be orthogonal; dot = %f", index, d)
	}
}

func TestMaterialToWorld(t *testing.T) {
	mat := Material{Kind: Diffuse, Colour: spectrum.Gray(0.5)}
	normal := types.Vec3{0, 1, 0}
	e1, e2 := orthonormalBasis(normal)

	if out := mat.ToWorld(normal, e1, e2, types.Vec3{0, 0, 1}); !types.ApproxEqual(out, normal, 1e-6) {
		t.Fatalf("expected local +Z to map to the normal; got %v", out)
	}
	if !mat.EmittedColour().IsBlack() {
		t.Fatal("expected diffuse material to emit no light")
	}

	light := Material{Kind: Emissive, Colour: spectrum.Gray(3)}
	if !light.EmitsLight() || light.EmittedColour() != spectrum.Gray(3) {
		t.Fatalf("expected emissive material to emit its colour; got %v", light.EmittedColour())
	}
}

func TestValidate(t *testing.T) {
	sc := makeTestScene(quadAt(0), []uint32{0, 0}, []uint32{0, 0}, testMaterials())
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}

	sc.BackMaterialIndex[1] = 7
	if err := sc.Validate(); !errors.Is(err, ErrMaterialOutOfRange) {
		t.Fatalf("expected to get %v; got %v", ErrMaterialOutOfRange, err)
	}

	sc.BackMaterialIndex = sc.BackMaterialIndex[:1]
	if err := sc.Validate(); err != ErrInconsistentGeometry {
		t.Fatalf("expected to get %v; got %v", ErrInconsistentGeometry, err)
	}

	sc = makeTestScene(quadAt(0), []uint32{0, 0}, []uint32{0, 0}, testMaterials())
	sc.BvhNodeList = nil
	if err := sc.Validate(); err != ErrMissingBvh {
		t.Fatalf("expected to get %v; got %v", ErrMissingBvh, err)
	}
}

func TestStats(t *testing.T) {
	sc := makeTestScene(quadAt(0), []uint32{0, 0}, []uint32{0, 0}, testMaterials())
	out := sc.Stats()
	for _, exp := range []string{"Triangles", "BVH nodes", "Emissives", "Total"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected stats table to contain %q; got:\n%s", exp, out)
		}
	}
}

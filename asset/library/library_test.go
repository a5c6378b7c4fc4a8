package library

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/achilleasa/radiant/asset/compiler/input"
	"github.com/achilleasa/radiant/sampling"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/types"
)

func TestNames(t *testing.T) {
	exp := []string{"cornell", "empty", "furnace", "quad"}
	if names := Names(); !reflect.DeepEqual(names, exp) {
		t.Fatalf("expected scene names %v; got %v", exp, names)
	}

	for _, entry := range Entries() {
		if entry.Description == "" {
			t.Fatalf("expected scene %q to have a description", entry.Name)
		}
	}
}

func TestBuildUnknownScene(t *testing.T) {
	if _, err := Build("sponza"); !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("expected to get %v; got %v", ErrUnknownScene, err)
	}
}

func TestBuildAll(t *testing.T) {
	type spec struct {
		name         string
		expTris      int
		expEmissives int
	}
	specs := []spec{
		{"cornell", 36, 2},
		{"furnace", 14, 2},
		{"quad", 2, 2},
		{"empty", 0, 0},
	}

	for _, s := range specs {
		sc, err := Build(s.name)
		if err != nil {
			t.Fatalf("[%s] %v", s.name, err)
		}
		if sc.NumTriangles() != s.expTris {
			t.Fatalf("[%s] expected %d triangles; got %d", s.name, s.expTris, sc.NumTriangles())
		}
		if len(sc.Emissives) != s.expEmissives {
			t.Fatalf("[%s] expected %d emissives; got %d", s.name, s.expEmissives, len(sc.Emissives))
		}
		if err = sc.Validate(); err != nil {
			t.Fatalf("[%s] %v", s.name, err)
		}
	}
}

func TestFurnaceIsClosed(t *testing.T) {
	sc, err := Build("furnace")
	if err != nil {
		t.Fatal(err)
	}

	rng := sampling.NewRand(5)
	aux := scene.NewTraversalStack()
	for i := 0; i < 500; i++ {
		dir := types.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
		if dir.Len() < 1e-3 {
			continue
		}
		ray := scene.NewRay(types.Vec3{0.1, -0.2, 0.05}, dir)
		if _, _, hit := sc.CastRay(ray, aux); !hit {
			t.Fatalf("[ray %d] expected ray %v to hit the furnace walls", i, ray.Dir)
		}
	}
}

func TestCornellLightFacesDown(t *testing.T) {
	sc, err := Build("cornell")
	if err != nil {
		t.Fatal(err)
	}

	aux := scene.NewTraversalStack()
	triIndex, in, hit := sc.CastRay(scene.NewRay(types.Vec3{0.05, 1.5, -0.1}, types.Vec3{0, 1, 0}), aux)
	if !hit {
		t.Fatal("expected ray to hit the light")
	}
	if mat := sc.MaterialFor(triIndex, in.Side); !mat.EmitsLight() {
		t.Fatalf("expected to hit the emissive side of the light; got %q (%s side)", mat.Name, in.Side)
	}

	// The red wall is on the left
	triIndex, in, hit = sc.CastRay(scene.NewRay(types.Vec3{0, 1.5, 0.8}, types.Vec3{-1, 0, 0}), aux)
	if !hit {
		t.Fatal("expected ray to hit the left wall")
	}
	if mat := sc.MaterialFor(triIndex, in.Side); mat.Name != "red" {
		t.Fatalf("expected to hit the red wall; got %q", mat.Name)
	}
}

func TestAddBoxExtents(t *testing.T) {
	raw := input.NewScene()
	mesh := raw.AddMesh("box")
	halfExtents := types.Vec3{1, 2, 3}
	addBox(mesh, types.Vec3{}, halfExtents, types.QuatIdent(), 0)

	if len(mesh.Primitives) != 12 {
		t.Fatalf("expected box to contain 12 triangles; got %d", len(mesh.Primitives))
	}

	min := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := min.Neg()
	for index, prim := range mesh.Primitives {
		for _, v := range prim.Vertices {
			min = types.MinVec3(min, v)
			max = types.MaxVec3(max, v)
		}

		// Faces point away from the box center
		if d := scene.TriangleNormal(prim.Vertices).Dot(prim.Center()); d <= 0 {
			t.Fatalf("[tri %d] expected face to point outwards; dot = %f", index, d)
		}
	}
	if min != halfExtents.Neg() || max != halfExtents {
		t.Fatalf("expected box bounds to be [%v, %v]; got [%v, %v]", halfExtents.Neg(), halfExtents, min, max)
	}
}

package input

import (
	"fmt"

	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

// A material definition referenced by primitives through its index.
type Material struct {
	Name   string
	Kind   scene.MaterialKind
	Colour spectrum.Spectrum

	// True if material is referenced by scene geometry.
	Used bool
}

// A triangle primitive
type Primitive struct {
	Vertices [3]types.Vec3

	// Per-vertex normals. If left zeroed the compiler uses the face normal.
	Normals [3]types.Vec3

	// Material indices for the front (counter-clockwise) and back side.
	FrontMaterialIndex int
	BackMaterialIndex  int

	bbox   [2]types.Vec3
	center types.Vec3
}

// Create a triangle primitive and calculate its AABB and center.
func NewPrimitive(vertices [3]types.Vec3, frontMat, backMat int) *Primitive {
	prim := &Primitive{
		Vertices:           vertices,
		FrontMaterialIndex: frontMat,
		BackMaterialIndex:  backMat,
	}
	prim.SetBBox(
		[2]types.Vec3{
			types.MinVec3(vertices[0], types.MinVec3(vertices[1], vertices[2])),
			types.MaxVec3(vertices[0], types.MaxVec3(vertices[1], vertices[2])),
		},
	)
	prim.SetCenter(vertices[0].Add(vertices[1]).Add(vertices[2]).Mul(1.0 / 3.0))
	return prim
}

// Returns true if per-vertex normals have been specified.
func (prim *Primitive) HasNormals() bool {
	var zero types.Vec3
	return prim.Normals[0] != zero || prim.Normals[1] != zero || prim.Normals[2] != zero
}

// Set the primitive AABB.
func (prim *Primitive) SetBBox(bbox [2]types.Vec3) {
	prim.bbox = bbox
}

// Set the primitive center.
func (prim *Primitive) SetCenter(center types.Vec3) {
	prim.center = center
}

// Get the primitive AABB.
func (prim *Primitive) BBox() [2]types.Vec3 {
	return prim.bbox
}

// Get primitive AABB center.
func (prim *Primitive) Center() types.Vec3 {
	return prim.center
}

// A mesh is constructed by a list of primitive.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Create a new mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:       name,
		Primitives: make([]*Primitive, 0),
	}
}

// Append a triangle to the mesh.
func (m *Mesh) AddTriangle(vertices [3]types.Vec3, frontMat, backMat int) *Primitive {
	prim := NewPrimitive(vertices, frontMat, backMat)
	m.Primitives = append(m.Primitives, prim)
	return prim
}

// Append a planar quad as two triangles. The quad is defined by its center,
// two half-extent vectors spanning it and the direction its front side should
// face.
func (m *Mesh) AddQuad(center, halfU, halfV, facing types.Vec3, frontMat, backMat int) {
	// Counter-clockwise winding around halfU x halfV faces along that vector
	if halfU.Cross(halfV).Dot(facing) < 0 {
		halfU, halfV = halfV, halfU
	}

	v0 := center.Sub(halfU).Sub(halfV)
	v1 := center.Add(halfU).Sub(halfV)
	v2 := center.Add(halfU).Add(halfV)
	v3 := center.Sub(halfU).Add(halfV)
	m.AddTriangle([3]types.Vec3{v0, v1, v2}, frontMat, backMat)
	m.AddTriangle([3]types.Vec3{v0, v2, v3}, frontMat, backMat)
}

// The scene contains all elements that are processed and optimized by the scene compiler.
type Scene struct {
	Meshes    []*Mesh
	Materials []*Material

	matNameToIndex map[string]int
}

// Create a new scene.
func NewScene() *Scene {
	return &Scene{
		Meshes:         make([]*Mesh, 0),
		Materials:      make([]*Material, 0),
		matNameToIndex: make(map[string]int),
	}
}

// Define a named material and return its index.
func (sc *Scene) AddMaterial(name string, kind scene.MaterialKind, colour spectrum.Spectrum) (int, error) {
	if sc.matNameToIndex == nil {
		sc.matNameToIndex = make(map[string]int)
	}
	if _, exists := sc.MaterialIndex(name); exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateMaterial, name)
	}

	sc.Materials = append(sc.Materials, &Material{
		Name:   name,
		Kind:   kind,
		Colour: colour,
	})
	sc.matNameToIndex[name] = len(sc.Materials) - 1
	return len(sc.Materials) - 1, nil
}

// Lookup a material index by its name.
func (sc *Scene) MaterialIndex(name string) (int, bool) {
	index, exists := sc.matNameToIndex[name]
	return index, exists
}

// Append a new mesh to the scene.
func (sc *Scene) AddMesh(name string) *Mesh {
	mesh := NewMesh(name)
	sc.Meshes = append(sc.Meshes, mesh)
	return mesh
}

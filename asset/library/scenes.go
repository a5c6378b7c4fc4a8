package library

import (
	"math"

	"github.com/achilleasa/radiant/asset/compiler/input"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

var (
	axisX = types.Vec3{1, 0, 0}
	axisY = types.Vec3{0, 1, 0}
	axisZ = types.Vec3{0, 0, 1}
)

// Radiance emitted by the quad scene.
var QuadEmission = spectrum.RGB(4, 2, 1)

// Reflectance of every wall in the furnace scene.
const FurnaceAlbedo float32 = 0.5

// Cornell box spanning x,z in [-1, 1] and y in [0, 2]. The box is open
// towards +z.
func buildCornell() (*input.Scene, error) {
	raw := input.NewScene()
	mats, err := addMaterials(raw, []materialDef{
		{"white", scene.Diffuse, spectrum.Gray(0.73)},
		{"red", scene.Diffuse, spectrum.RGB(0.65, 0.05, 0.05)},
		{"green", scene.Diffuse, spectrum.RGB(0.12, 0.45, 0.15)},
		{"light", scene.Emissive, spectrum.Gray(15)},
	})
	if err != nil {
		return nil, err
	}
	white, red, green, light := mats[0], mats[1], mats[2], mats[3]

	walls := raw.AddMesh("walls")
	walls.AddQuad(types.Vec3{0, 0, 0}, axisX, axisZ, axisY, white, white)
	walls.AddQuad(types.Vec3{0, 2, 0}, axisX, axisZ, axisY.Neg(), white, white)
	walls.AddQuad(types.Vec3{0, 1, -1}, axisX, axisY, axisZ, white, white)
	walls.AddQuad(types.Vec3{-1, 1, 0}, axisY, axisZ, axisX, red, red)
	walls.AddQuad(types.Vec3{1, 1, 0}, axisY, axisZ, axisX.Neg(), green, green)

	// Slightly below the ceiling so the two do not overlap
	lamp := raw.AddMesh("light")
	lamp.AddQuad(types.Vec3{0, 1.99, 0}, axisX.Mul(0.25), axisZ.Mul(0.25), axisY.Neg(), light, white)

	tall := raw.AddMesh("tall block")
	addBox(tall, types.Vec3{-0.35, 0.6, -0.3}, types.Vec3{0.3, 0.6, 0.3}, types.QuatFromAxisAngle(axisY, degToRad(20)), white)

	short := raw.AddMesh("short block")
	addBox(short, types.Vec3{0.4, 0.3, 0.35}, types.Vec3{0.3, 0.3, 0.3}, types.QuatFromAxisAngle(axisY, degToRad(-17)), white)

	return raw, nil
}

// Closed cube spanning [-1, 1] on every axis. All walls share the same
// albedo; a light covers the center of the ceiling.
func buildFurnace() (*input.Scene, error) {
	raw := input.NewScene()
	mats, err := addMaterials(raw, []materialDef{
		{"albedo", scene.Diffuse, spectrum.Gray(FurnaceAlbedo)},
		{"light", scene.Emissive, spectrum.Gray(5)},
	})
	if err != nil {
		return nil, err
	}
	albedo, light := mats[0], mats[1]

	walls := raw.AddMesh("walls")
	addBox(walls, types.Vec3{}, types.Vec3{1, 1, 1}, types.QuatIdent(), albedo)
	flipFaces(walls)

	lamp := raw.AddMesh("light")
	lamp.AddQuad(types.Vec3{0, 0.99, 0}, axisX.Mul(0.5), axisZ.Mul(0.5), axisY.Neg(), light, albedo)

	return raw, nil
}

// A 2x2 quad in the z=0 plane. Its front side faces +z and emits
// QuadEmission; its back side is a grey diffuse reflector.
func buildQuad() (*input.Scene, error) {
	raw := input.NewScene()
	mats, err := addMaterials(raw, []materialDef{
		{"emitter", scene.Emissive, QuadEmission},
		{"grey", scene.Diffuse, spectrum.Gray(0.5)},
	})
	if err != nil {
		return nil, err
	}

	quad := raw.AddMesh("quad")
	quad.AddQuad(types.Vec3{}, axisX, axisY, axisZ, mats[0], mats[1])
	return raw, nil
}

type materialDef struct {
	name   string
	kind   scene.MaterialKind
	colour spectrum.Spectrum
}

func addMaterials(raw *input.Scene, defs []materialDef) ([]int, error) {
	indices := make([]int, len(defs))
	for i, def := range defs {
		index, err := raw.AddMaterial(def.name, def.kind, def.colour)
		if err != nil {
			return nil, err
		}
		indices[i] = index
	}
	return indices, nil
}

// Append an oriented box whose faces point outwards. The box is centered at
// center, has the given half extents along its local axes and is rotated by
// rot around its center.
func addBox(mesh *input.Mesh, center, halfExtents types.Vec3, rot types.Quat, mat int) {
	axes := [3]types.Vec3{axisX, axisY, axisZ}
	for a := 0; a < 3; a++ {
		b, c := (a+1)%3, (a+2)%3
		halfU := rot.Rotate(axes[b].MulVec(halfExtents))
		halfV := rot.Rotate(axes[c].MulVec(halfExtents))
		for _, sign := range []float32{1, -1} {
			facing := rot.Rotate(axes[a].Mul(sign))
			faceCenter := center.Add(facing.Mul(halfExtents[a]))
			mesh.AddQuad(faceCenter, halfU, halfV, facing, mat, mat)
		}
	}
}

// Reverse the winding of all mesh primitives so their front sides face the
// opposite direction.
func flipFaces(mesh *input.Mesh) {
	for _, prim := range mesh.Primitives {
		prim.Vertices[1], prim.Vertices[2] = prim.Vertices[2], prim.Vertices[1]
		prim.FrontMaterialIndex, prim.BackMaterialIndex = prim.BackMaterialIndex, prim.FrontMaterialIndex
	}
}

func degToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

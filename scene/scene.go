package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/radiant/types"
	"github.com/olekukonko/tablewriter"
)

// Scene is the flattened, read-only representation of a compiled scene.
// Triangle i is described by entries [3i, 3i+3) of the vertex and normal
// lists and by entry i of the material index lists.
//
// A Scene is never mutated after compilation so it can be shared by any
// number of concurrent tracers as long as each one uses its own
// TraversalStack.
type Scene struct {
	BvhNodeList []BvhNode
	Materials   []Material
	Emissives   []EmissivePrimitive

	// Primitives are stored as an array of structs.
	VertexList         []types.Vec3
	NormalList         []types.Vec3
	FrontMaterialIndex []uint32
	BackMaterialIndex  []uint32
}

// Get the number of triangles in the scene.
func (sc *Scene) NumTriangles() int {
	return len(sc.FrontMaterialIndex)
}

// Get the material that applies to a triangle side. Returns nil for
// NonApplicable hits.
func (sc *Scene) MaterialFor(triIndex uint32, side SurfaceSide) *Material {
	switch side {
	case Front:
		return &sc.Materials[sc.FrontMaterialIndex[triIndex]]
	case Back:
		return &sc.Materials[sc.BackMaterialIndex[triIndex]]
	}
	return nil
}

// Check that the flattened lists are consistent with each other.
func (sc *Scene) Validate() error {
	numTris := len(sc.FrontMaterialIndex)
	if len(sc.BackMaterialIndex) != numTris ||
		len(sc.VertexList) != 3*numTris ||
		len(sc.NormalList) != 3*numTris {
		return ErrInconsistentGeometry
	}

	for triIndex := 0; triIndex < numTris; triIndex++ {
		if int(sc.FrontMaterialIndex[triIndex]) >= len(sc.Materials) ||
			int(sc.BackMaterialIndex[triIndex]) >= len(sc.Materials) {
			return fmt.Errorf("%w: triangle %d", ErrMaterialOutOfRange, triIndex)
		}
	}

	for _, em := range sc.Emissives {
		if int(em.PrimitiveIndex) >= numTris {
			return fmt.Errorf("%w: emissive references triangle %d", ErrInconsistentGeometry, em.PrimitiveIndex)
		}
	}

	if numTris > 0 && len(sc.BvhNodeList) == 0 {
		return ErrMissingBvh
	}

	return nil
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Geometry", "---", "", fmtSize(sc.VertexList, sc.NormalList, sc.BvhNodeList)})
	table.Append([]string{"", "Triangles", fmt.Sprint(sc.NumTriangles()), ""})
	table.Append([]string{"", "Vertices", fmt.Sprint(len(sc.VertexList)), fmtSize(sc.VertexList)})
	table.Append([]string{"", "Normals", fmt.Sprint(len(sc.NormalList)), fmtSize(sc.NormalList)})
	table.Append([]string{"", "BVH nodes", fmt.Sprint(len(sc.BvhNodeList)), fmtSize(sc.BvhNodeList)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Materials", "---", "", fmtSize(sc.Materials, sc.FrontMaterialIndex, sc.BackMaterialIndex)})
	table.Append([]string{"", "Materials", fmt.Sprint(len(sc.Materials)), fmtSize(sc.Materials)})
	table.Append([]string{"", "Mat. indices", fmt.Sprint(len(sc.FrontMaterialIndex) + len(sc.BackMaterialIndex)), fmtSize(sc.FrontMaterialIndex, sc.BackMaterialIndex)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Emissives", "---", fmt.Sprint(len(sc.Emissives)), fmtSize(sc.Emissives)})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(sc.VertexList, sc.NormalList, sc.BvhNodeList, sc.Materials, sc.FrontMaterialIndex, sc.BackMaterialIndex, sc.Emissives), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}

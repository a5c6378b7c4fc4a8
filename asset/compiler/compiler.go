package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/radiant/asset/compiler/bvh"
	"github.com/achilleasa/radiant/asset/compiler/input"
	"github.com/achilleasa/radiant/log"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/types"
)

const (
	minPrimitivesPerLeaf = 4

	// Triangles with an area below this threshold are dropped.
	minPrimitiveArea float32 = 1e-12
)

type sceneCompiler struct {
	rawScene      *input.Scene
	compiledScene *scene.Scene
	logger        log.Logger

	// Maps raw material indices to indices in the compiled material list.
	matIndexRemap map[int]uint32
}

// Compile a programmatically assembled scene into the flat representation
// consumed by the tracer.
func Compile(rawScene *input.Scene) (*scene.Scene, error) {
	compiler := &sceneCompiler{
		rawScene:      rawScene,
		compiledScene: &scene.Scene{},
		logger:        log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	var err error
	err = compiler.processMaterials()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	err = compiler.compiledScene.Validate()
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.compiledScene, nil
}

// Check primitive material references, prune materials that no primitive
// uses and build the compiled material list.
func (sc *sceneCompiler) processMaterials() error {
	for _, mat := range sc.rawScene.Materials {
		mat.Used = false
	}

	for _, mesh := range sc.rawScene.Meshes {
		for primIndex, prim := range mesh.Primitives {
			for _, matIndex := range []int{prim.FrontMaterialIndex, prim.BackMaterialIndex} {
				if matIndex < 0 || matIndex >= len(sc.rawScene.Materials) {
					return fmt.Errorf("%w: mesh %q, primitive %d, material index %d", ErrUnknownMaterial, mesh.Name, primIndex, matIndex)
				}
				// Degenerate primitives are dropped during partitioning
				if !isDegenerate(prim) {
					sc.rawScene.Materials[matIndex].Used = true
				}
			}
		}
	}

	sc.matIndexRemap = make(map[int]uint32)
	sc.compiledScene.Materials = make([]scene.Material, 0, len(sc.rawScene.Materials))
	for matIndex, mat := range sc.rawScene.Materials {
		if !mat.Used {
			sc.logger.Infof(`pruning unused material "%s"`, mat.Name)
			continue
		}

		sc.matIndexRemap[matIndex] = uint32(len(sc.compiledScene.Materials))
		sc.compiledScene.Materials = append(sc.compiledScene.Materials, scene.Material{
			Name:   mat.Name,
			Kind:   mat.Kind,
			Colour: mat.Colour,
		})
	}

	sc.logger.Infof("using %d out of %d materials", len(sc.compiledScene.Materials), len(sc.rawScene.Materials))
	return nil
}

// Partition all scene primitives into a single BVH tree and copy their
// data into the scene's flat lists in leaf order.
func (sc *sceneCompiler) partitionGeometry() error {
	start := time.Now()
	sc.logger.Notice("partitioning geometry")

	volList := make([]bvh.BoundedVolume, 0)
	dropped := 0
	for _, mesh := range sc.rawScene.Meshes {
		for _, prim := range mesh.Primitives {
			if isDegenerate(prim) {
				dropped++
				continue
			}
			volList = append(volList, prim)
		}
	}

	if dropped > 0 {
		sc.logger.Warningf("dropped %d degenerate primitives", dropped)
	}
	if len(volList) == 0 {
		return ErrNoGeometry
	}

	// Pre-allocate flat lists
	sc.compiledScene.VertexList = make([]types.Vec3, 3*len(volList))
	sc.compiledScene.NormalList = make([]types.Vec3, 3*len(volList))
	sc.compiledScene.FrontMaterialIndex = make([]uint32, len(volList))
	sc.compiledScene.BackMaterialIndex = make([]uint32, len(volList))
	sc.compiledScene.Emissives = make([]scene.EmissivePrimitive, 0)

	var primOffset uint32 = 0
	sc.logger.Infof("building BVH tree (%d meshes, %d primitives)", len(sc.rawScene.Meshes), len(volList))
	bvhNodes, stats := bvh.Build(volList, minPrimitivesPerLeaf, func(node *scene.BvhNode, workList []bvh.BoundedVolume) {
		node.SetPrimitives(primOffset, uint32(len(workList)))

		for _, workItem := range workList {
			prim := workItem.(*input.Primitive)
			sc.emitPrimitive(primOffset, prim)
			primOffset++
		}
	}, bvh.SurfaceAreaHeuristic)
	sc.compiledScene.BvhNodeList = bvhNodes

	sc.logger.Infof("BVH tree: %d inner nodes, %d leafs, max depth %d", stats.Nodes, stats.Leafs, stats.MaxDepth)
	if len(sc.compiledScene.Emissives) > 0 {
		sc.logger.Infof("found %d emissive primitives", len(sc.compiledScene.Emissives))
	} else {
		sc.logger.Warning("the scene contains no emissive primitives; all estimates will be black!")
	}

	sc.logger.Noticef("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Copy primitive data to the flat lists at the given triangle index.
func (sc *sceneCompiler) emitPrimitive(triIndex uint32, prim *input.Primitive) {
	out := sc.compiledScene
	base := 3 * triIndex

	copy(out.VertexList[base:base+3], prim.Vertices[:])
	if prim.HasNormals() {
		for i := 0; i < 3; i++ {
			out.NormalList[base+uint32(i)] = prim.Normals[i].Normalize()
		}
	} else {
		faceNormal := scene.TriangleNormal(prim.Vertices).Normalize()
		for i := 0; i < 3; i++ {
			out.NormalList[base+uint32(i)] = faceNormal
		}
	}

	out.FrontMaterialIndex[triIndex] = sc.matIndexRemap[prim.FrontMaterialIndex]
	out.BackMaterialIndex[triIndex] = sc.matIndexRemap[prim.BackMaterialIndex]

	// Track light sources; a triangle emits if either of its sides does
	if sc.rawScene.Materials[prim.FrontMaterialIndex].Kind == scene.Emissive ||
		sc.rawScene.Materials[prim.BackMaterialIndex].Kind == scene.Emissive {
		out.Emissives = append(out.Emissives, scene.EmissivePrimitive{
			PrimitiveIndex: triIndex,
			Area:           scene.TriangleArea(prim.Vertices),
		})
	}
}

func isDegenerate(prim *input.Primitive) bool {
	return scene.TriangleArea(prim.Vertices) < minPrimitiveArea
}

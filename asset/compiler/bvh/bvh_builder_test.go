package bvh

import (
	"testing"

	"github.com/achilleasa/radiant/asset/compiler/input"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/types"
)

func makeItemList() []BoundedVolume {
	type primSpec struct {
		min types.Vec3
		max types.Vec3
	}

	primSpecs := []primSpec{
		{types.Vec3{-2, 0, -2}, types.Vec3{-1, 1, -1}},
		{types.Vec3{1, 0, -2}, types.Vec3{2, 1, -1}},
		{types.Vec3{-2, 0, 1}, types.Vec3{-1, 1, 2}},
		{types.Vec3{1, 0, 1}, types.Vec3{2, 1, 2}},
	}

	itemList := make([]BoundedVolume, len(primSpecs))
	for idx, ps := range primSpecs {
		prim := &input.Primitive{}
		prim.SetBBox([2]types.Vec3{ps.min, ps.max})
		prim.SetCenter(ps.min.Add(ps.max).Mul(0.5))
		itemList[idx] = prim
	}
	return itemList
}

func TestLeafCallback(t *testing.T) {
	itemList := makeItemList()

	var cbCount = 0
	var expItemListCount = 0
	cb := func(leaf *scene.BvhNode, itemList []BoundedVolume) {
		cbCount++
		if len(itemList) != expItemListCount {
			t.Fatalf("expected leaf callback to be called with %d items; got %d", expItemListCount, len(itemList))
		}
	}

	var expCount = 0

	// Partition each item in a single leaf
	cbCount = 0
	expItemListCount = 1
	treeNodes, stats := Build(itemList, 1, cb, SurfaceAreaHeuristic)

	expCount = 4
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 7
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}
	if stats.Leafs != 4 || stats.Nodes != 3 || stats.PartitionedItems != 4 {
		t.Fatalf("expected stats to report 4 leafs, 3 inner nodes and 4 items; got %+v", stats)
	}

	// Partition two items in a single leaf
	cbCount = 0
	expItemListCount = 2
	treeNodes, _ = Build(itemList, 2, cb, SurfaceAreaHeuristic)

	expCount = 2
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 3
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}
}

func TestTreeLayout(t *testing.T) {
	itemList := makeItemList()

	var primOffset uint32
	treeNodes, _ := Build(itemList, 1, func(leaf *scene.BvhNode, workList []BoundedVolume) {
		leaf.SetPrimitives(primOffset, uint32(len(workList)))
		primOffset += uint32(len(workList))
	}, SurfaceAreaHeuristic)

	root := treeNodes[0]
	if root.IsLeaf() {
		t.Fatal("expected root node to be an inner node")
	}
	if exp := (types.Vec3{-2, 0, -2}); root.Min != exp {
		t.Fatalf("expected root bbox min to be %v; got %v", exp, root.Min)
	}
	if exp := (types.Vec3{2, 1, 2}); root.Max != exp {
		t.Fatalf("expected root bbox max to be %v; got %v", exp, root.Max)
	}

	// Leafs must cover a contiguous, non-overlapping primitive range
	covered := make([]bool, len(itemList))
	for index, node := range treeNodes {
		if !node.IsLeaf() {
			left, right := node.GetChildNodes()
			if int(left) <= index || int(right) <= index {
				t.Fatalf("[node %d] expected children to be stored after their parent; got %d, %d", index, left, right)
			}
			continue
		}

		first, count := node.GetPrimitives()
		for primIndex := first; primIndex < first+count; primIndex++ {
			if covered[primIndex] {
				t.Fatalf("[node %d] primitive %d referenced by multiple leafs", index, primIndex)
			}
			covered[primIndex] = true
		}
	}
	for primIndex, ok := range covered {
		if !ok {
			t.Fatalf("primitive %d not referenced by any leaf", primIndex)
		}
	}
}

func TestEmptyWorkList(t *testing.T) {
	treeNodes, stats := Build(nil, 1, func(*scene.BvhNode, []BoundedVolume) {
		t.Fatal("leaf callback should not be invoked for an empty work list")
	}, SurfaceAreaHeuristic)

	if len(treeNodes) != 0 || stats.Leafs != 0 {
		t.Fatalf("expected an empty tree; got %d nodes", len(treeNodes))
	}
}

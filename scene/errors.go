package scene

import "errors"

var (
	ErrInconsistentGeometry = errors.New("scene: vertex, normal and material lists do not describe the same number of triangles")
	ErrMaterialOutOfRange   = errors.New("scene: triangle references an undefined material")
	ErrMissingBvh           = errors.New("scene: scene defines geometry but no BVH")
)

package compiler

import "errors"

var (
	ErrNoGeometry      = errors.New("compiler: scene contains no triangles")
	ErrUnknownMaterial = errors.New("compiler: primitive references an undefined material")
)

package input

import "errors"

var (
	ErrDuplicateMaterial = errors.New("input: material already defined")
)

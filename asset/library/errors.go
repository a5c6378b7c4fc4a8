package library

import "errors"

var (
	ErrUnknownScene = errors.New("library: unknown scene")
)

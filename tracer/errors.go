package tracer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("tracer: no scene defined")
	ErrInvalidPassCount = errors.New("tracer: pass count must be at least 1")
	ErrInterrupted      = errors.New("tracer: interrupted while tracing")
)

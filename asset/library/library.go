// Package library provides a set of programmatically assembled scenes.
package library

import (
	"fmt"
	"sort"

	"github.com/achilleasa/radiant/asset/compiler"
	"github.com/achilleasa/radiant/asset/compiler/input"
	"github.com/achilleasa/radiant/scene"
)

// Entry describes a built-in scene.
type Entry struct {
	Name        string
	Description string

	build func() (*input.Scene, error)
}

var registry = map[string]Entry{}

func register(name, description string, build func() (*input.Scene, error)) {
	registry[name] = Entry{
		Name:        name,
		Description: description,
		build:       build,
	}
}

// Get the names of all built-in scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get all built-in scene entries sorted by name.
func Entries() []Entry {
	names := Names()
	entries := make([]Entry, len(names))
	for index, name := range names {
		entries[index] = registry[name]
	}
	return entries
}

// Assemble and compile a built-in scene.
func Build(name string) (*scene.Scene, error) {
	entry, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	// A scene without geometry cannot go through the compiler
	if entry.build == nil {
		return &scene.Scene{}, nil
	}

	raw, err := entry.build()
	if err != nil {
		return nil, fmt.Errorf("library: assembling %q: %v", name, err)
	}

	return compiler.Compile(raw)
}

func init() {
	register("cornell", "Cornell box with a ceiling area light and two rotated blocks", buildCornell)
	register("furnace", "closed box with a uniform diffuse albedo and an emissive ceiling", buildFurnace)
	register("quad", "a single quad at z=0 that emits from its +z side", buildQuad)
	register("empty", "a scene without geometry; every ray misses", nil)
}

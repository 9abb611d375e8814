// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	_ "embed"
	"os"
)

// DefaultVertex transforms interleaved position+color vertices by the
// model, view and projection uniforms.
//
//go:embed mesh.vert
var DefaultVertex string

// DefaultFragment writes the interpolated vertex color.
//
//go:embed mesh.frag
var DefaultFragment string

// Source returns the contents of path, or fallback when path is empty.
func Source(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

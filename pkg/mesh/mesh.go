// Package mesh loads triangle meshes from the viewer's text geometry format.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Interleaved vertex layout: position (x, y, z) followed by color (r, g, b).
const (
	PositionSize = 3
	ColorSize    = 3
	VertexStride = PositionSize + ColorSize
)

// Data is an expanded, draw-ready mesh.
// Every face corner owns its own vertex record, uv and normal.
type Data struct {
	// Vertices holds VertexStride floats per vertex.
	Vertices []float32
	UVs      []mgl32.Vec2
	Normals  []mgl32.Vec3
}

// VertexCount returns the number of interleaved vertex records.
func (d *Data) VertexCount() int {
	return len(d.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles described by the vertices.
func (d *Data) TriangleCount() int {
	return d.VertexCount() / 3
}

// Position returns the position of vertex i.
func (d *Data) Position(i int) mgl32.Vec3 {
	off := i * VertexStride
	return mgl32.Vec3{d.Vertices[off], d.Vertices[off+1], d.Vertices[off+2]}
}

// Color returns the color of vertex i.
func (d *Data) Color(i int) mgl32.Vec3 {
	off := i*VertexStride + PositionSize
	return mgl32.Vec3{d.Vertices[off], d.Vertices[off+1], d.Vertices[off+2]}
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns zero vectors.
func (d *Data) Bounds() (lo, hi mgl32.Vec3) {
	n := d.VertexCount()
	if n == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo = d.Position(0)
	hi = lo
	for i := 1; i < n; i++ {
		p := d.Position(i)
		for axis := 0; axis < 3; axis++ {
			if p[axis] < lo[axis] {
				lo[axis] = p[axis]
			}
			if p[axis] > hi[axis] {
				hi[axis] = p[axis]
			}
		}
	}
	return lo, hi
}

// debugVertices is a two-triangle quad in the XY plane.
var debugVertices = []float32{
	// Position         // Color (RGB)
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // Bottom Left - Red
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // Bottom Right - Green
	0.5, 0.5, 0.0, 0.0, 0.0, 1.0, // Top Right - Blue

	0.5, 0.5, 0.0, 0.0, 0.0, 1.0, // Top Right - Blue
	-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, // Top Left - Yellow
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // Bottom Left - Red
}

// DebugMesh returns the hardcoded fallback mesh drawn when loading fails.
// It carries no uvs or normals. Each call returns a fresh copy.
func DebugMesh() *Data {
	vertices := make([]float32, len(debugVertices))
	copy(vertices, debugVertices)
	return &Data{Vertices: vertices}
}

package mesh

import (
	"errors"
	"fmt"
)

// ErrEmptyMesh means a geometry file parsed cleanly but describes no faces.
var ErrEmptyMesh = errors.New("geometry file has no faces")

// LoadOrDebug loads path and falls back to DebugMesh on any error or when
// the file has nothing to draw.
// The returned data is never nil; err reports why the fallback was taken.
func LoadOrDebug(path string) (data *Data, err error) {
	data, err = Load(path)
	if err != nil {
		return DebugMesh(), err
	}
	if data.VertexCount() == 0 {
		return DebugMesh(), fmt.Errorf("%s: %w", path, ErrEmptyMesh)
	}
	return data, nil
}

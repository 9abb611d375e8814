package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrDebug(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "malformed.obj")
	if err := os.WriteFile(malformed, []byte(threeVertices+"f 1/1/1 2/1/1\n"), 0644); err != nil {
		t.Fatalf("failed to write test mesh: %v", err)
	}
	badIndex := filepath.Join(dir, "bad_index.obj")
	if err := os.WriteFile(badIndex, []byte(threeVertices+"f 1/1/1 2/1/1 5/1/1\n"), 0644); err != nil {
		t.Fatalf("failed to write test mesh: %v", err)
	}

	noFaces := filepath.Join(dir, "no_faces.obj")
	if err := os.WriteFile(noFaces, []byte("v 0 0 0 1 1 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test mesh: %v", err)
	}
	commentsOnly := filepath.Join(dir, "comments.obj")
	if err := os.WriteFile(commentsOnly, []byte("# nothing here\n"), 0644); err != nil {
		t.Fatalf("failed to write test mesh: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantErr   error
		wantVerts int
	}{
		{"loaded", filepath.Join("testdata", "quad.obj"), nil, 6},
		{"missing file", filepath.Join(dir, "missing.obj"), ErrOpenFailed, 6},
		{"malformed face", malformed, ErrMalformedFace, 6},
		{"bad index", badIndex, ErrBadIndexReference, 6},
		{"no faces", noFaces, ErrEmptyMesh, 6},
		{"comments only", commentsOnly, ErrEmptyMesh, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadOrDebug(tt.path)
			if data == nil {
				t.Fatal("LoadOrDebug must always return a mesh")
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(data.UVs) != tt.wantVerts {
					t.Errorf("loaded mesh should keep its uvs, got %d", len(data.UVs))
				}
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				// Fallback is the debug mesh, without uvs or normals
				if len(data.UVs) != 0 || len(data.Normals) != 0 {
					t.Error("fallback mesh should carry no uvs or normals")
				}
			}
			if data.VertexCount() != tt.wantVerts {
				t.Errorf("expected %d vertices, got %d", tt.wantVerts, data.VertexCount())
			}
		})
	}
}

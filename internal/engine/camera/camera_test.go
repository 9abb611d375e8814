package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	c := New()
	if c.FovY != 45 || c.Near != 0.1 || c.Far != 100 {
		t.Errorf("projection defaults: got fov=%v near=%v far=%v", c.FovY, c.Near, c.Far)
	}
	if c.Distance != 3 || c.Pitch != 30 || c.Yaw != 45 {
		t.Errorf("view defaults: got dist=%v pitch=%v yaw=%v", c.Distance, c.Pitch, c.Yaw)
	}
	if c.SpinRate != 15 {
		t.Errorf("expected spin rate 15, got %v", c.SpinRate)
	}
}

func TestModelAtZeroIsIdentity(t *testing.T) {
	m := New().Model(0)
	if !m.ApproxEqualThreshold(mgl32.Ident4(), 1e-6) {
		t.Errorf("Model(0) should be identity, got %v", m)
	}
}

func TestModelSpin(t *testing.T) {
	c := New()
	start := c.Model(0)
	later := c.Model(4)

	// 15 deg/s for 4s
	want := start.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(60)))
	if !later.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Model(4) should be a 60 degree Y rotation:\ngot  %v\nwant %v", later, want)
	}

	// X axis rotates toward -Z under a positive Y rotation.
	p := later.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	wantX := float32(math.Cos(math.Pi / 3))
	wantZ := -float32(math.Sin(math.Pi / 3))
	if abs(p[0]-wantX) > 1e-5 || abs(p[1]) > 1e-5 || abs(p[2]-wantZ) > 1e-5 {
		t.Errorf("rotated point: got %v, want (%v, 0, %v)", p, wantX, wantZ)
	}
}

func TestView(t *testing.T) {
	v := New().View()

	want := mgl32.Translate3D(0, 0, -3).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(30))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))
	if !v.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("View:\ngot  %v\nwant %v", v, want)
	}

	// The origin ends up straight ahead of the camera.
	o := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if abs(o[0]) > 1e-6 || abs(o[1]) > 1e-6 || abs(o[2]+3) > 1e-6 {
		t.Errorf("origin in view space: got %v, want (0, 0, -3)", o)
	}
}

func TestProjectionSameAspect(t *testing.T) {
	c := New()
	a := c.Projection(800, 600)
	b := c.Projection(1600, 1200)
	if a != b {
		t.Errorf("same aspect ratio should give identical projections:\n%v\n%v", a, b)
	}
}

func TestProjectionDifferentAspect(t *testing.T) {
	c := New()
	a := c.Projection(800, 600)
	b := c.Projection(1280, 720)

	if a[0] == b[0] {
		t.Error("aspect-dependent entry [0] should differ")
	}
	for i := 1; i < 16; i++ {
		if a[i] != b[i] {
			t.Errorf("entry %d should not depend on aspect: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestProjectionDegenerateViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero height", 800, 0},
		{"zero width", 0, 600},
		{"zero both", 0, 0},
		{"negative height", 800, -10},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Projection(tt.width, tt.height)
			for i, v := range p {
				f := float64(v)
				if math.IsNaN(f) || math.IsInf(f, 0) {
					t.Errorf("entry %d is not finite: %v", i, v)
				}
			}
		})
	}
}

func TestAspect(t *testing.T) {
	tests := []struct {
		width, height int
		want          float32
	}{
		{800, 600, 800.0 / 600.0},
		{600, 600, 1},
		{800, 0, 800},
		{0, 0, 1},
	}

	for _, tt := range tests {
		if got := Aspect(tt.width, tt.height); got != tt.want {
			t.Errorf("Aspect(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
		}
	}
}

type recorder struct {
	names []string
	mats  map[string]mgl32.Mat4
}

func (r *recorder) SetMat4(name string, m mgl32.Mat4) {
	if r.mats == nil {
		r.mats = make(map[string]mgl32.Mat4)
	}
	r.names = append(r.names, name)
	r.mats[name] = m
}

func TestApply(t *testing.T) {
	c := New()
	tr := c.Compute(2, 800, 600)

	var r recorder
	tr.Apply(&r)

	want := []string{"model", "view", "projection"}
	if len(r.names) != len(want) {
		t.Fatalf("expected %d uploads, got %v", len(want), r.names)
	}
	for i, name := range want {
		if r.names[i] != name {
			t.Errorf("upload %d: got %q, want %q", i, r.names[i], name)
		}
	}

	if r.mats["model"] != c.Model(2) {
		t.Error("model uniform does not match Model(2)")
	}
	if r.mats["view"] != c.View() {
		t.Error("view uniform does not match View()")
	}
	if r.mats["projection"] != c.Projection(800, 600) {
		t.Error("projection uniform does not match Projection(800, 600)")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{1, 0, 0})

	want := Vec3{1, 0, 0}
	if got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}

	// The eye ends up at the origin of view space.
	p := m.TransformVec3(eye)
	if abs(p.X) > 1e-5 || abs(p.Y) > 1e-5 || abs(p.Z) > 1e-5 {
		t.Errorf("LookAt eye: got %v, want origin", p)
	}

	// Looking down -Z: the center is in front of the camera.
	c := m.TransformVec3(center)
	if abs(c.Z+5) > 1e-5 {
		t.Errorf("LookAt center: got %v, want z=-5", c)
	}
}

func TestVec4XYZ(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	if v.XYZ() != (Vec3{1, 2, 3}) {
		t.Errorf("XYZ() = %v", v.XYZ())
	}
	if v.W() != 4 {
		t.Errorf("W() = %v", v.W())
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

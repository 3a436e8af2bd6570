package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{-1, 5, 2}
	b := Vec3{3, -2, 2}

	if got, want := a.Min(b), (Vec3{-1, -2, 2}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, 2}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestVec3Componentwise(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"Floor", Vec3{1.5, -0.5, 2}.Floor(), Vec3{1, -1, 2}},
		{"Abs", Vec3{-1, 2, -3}.Abs(), Vec3{1, 2, 3}},
		{"Mul", Vec3{1, 2, 3}.Mul(Vec3{2, 3, 4}), Vec3{2, 6, 12}},
		{"Div", Vec3{2, 6, 12}.Div(Vec3{2, 3, 4}), Vec3{1, 2, 3}},
		{"Splat", Splat(7), Vec3{7, 7, 7}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestVec3MaxComponent(t *testing.T) {
	if got := (Vec3{1, 9, 3}).MaxComponent(); got != 9 {
		t.Errorf("MaxComponent() = %v, want 9", got)
	}
	if got := (Vec3{-1, -9, -3}).MaxComponent(); got != -1 {
		t.Errorf("MaxComponent() = %v, want -1", got)
	}
}

package math

import (
	"math"
	"testing"
)

func matNear(t *testing.T, got, want Mat4, tolerance float32) {
	t.Helper()
	for i := range got {
		if d := got[i] - want[i]; d > tolerance || d < -tolerance {
			t.Fatalf("element %d: got %v, want %v\n got  %v\n want %v", i, got[i], want[i], got, want)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := TRS(Vec3{X: 1, Y: 2, Z: 3}, QuatFromAxisAngle(Vec3{Y: 1}, 0.7), Vec3{X: 2, Y: 2, Z: 2})
	matNear(t, m.Mul(Identity()), m, 0)
	matNear(t, Identity().Mul(m), m, 0)
}

func TestTranslationLayout(t *testing.T) {
	m := Translation(Vec3{X: 5, Y: 10, Z: 15})
	// Translation sits in the last column
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translation: got (%v, %v, %v), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translation(Vec3{X: 10, Y: 20, Z: 30}), Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 11, Y: 22, Z: 33}},
		{"scale", Scaling(Vec3{X: 2, Y: 3, Z: 4}), Vec3{X: 1, Y: 1, Z: 1}, Vec3{X: 2, Y: 3, Z: 4}},
		{"scale then translate", TRS(Vec3{X: 1}, QuatIdentity(), Vec3{X: 2, Y: 2, Z: 2}), Vec3{X: 1, Y: 1}, Vec3{X: 3, Y: 2}},
		{"rotate y", QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2).ToMat4(), Vec3{X: 1}, Vec3{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); !got.NearEqual(tt.want, 1e-5) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translation(Vec3{X: 100, Y: 100, Z: 100})
	d := Vec3{X: 0, Y: 1, Z: 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection: got %v, want %v", got, d)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/4, 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero focal terms")
	}
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("Perspective w row: got [11]=%v [15]=%v, want -1 and 0", m[11], m[15])
	}

	// Points on the near and far planes map to NDC depth -1 and 1
	near := m.TransformPoint(Vec3{Z: -0.1})
	far := m.TransformPoint(Vec3{Z: -100})
	if math.Abs(float64(near.Z+1)) > 1e-4 || math.Abs(float64(far.Z-1)) > 1e-4 {
		t.Errorf("depth range: near %v far %v", near.Z, far.Z)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{X: 3, Y: 4, Z: 5}
	m := LookAt(eye, Vec3{}, Vec3{Y: 1})

	if got := m.TransformPoint(eye); !got.NearEqual(Vec3{}, 1e-5) {
		t.Errorf("eye in view space: got %v, want origin", got)
	}
	// The target lies straight ahead on -Z
	got := m.TransformPoint(Vec3{})
	if math.Abs(float64(got.X)) > 1e-5 || math.Abs(float64(got.Y)) > 1e-5 || got.Z >= 0 {
		t.Errorf("target in view space: got %v, want on -Z axis", got)
	}
}

func TestInverse(t *testing.T) {
	m := TRS(Vec3{X: -4, Y: 2, Z: 9}, QuatFromAxisAngle(Vec3{X: 1, Y: 2, Z: 3}.Normalize(), 1.3), Vec3{X: 1, Y: 2, Z: 0.5})
	matNear(t, m.Mul(m.Inverse()), Identity(), 1e-4)

	p := Vec3{X: 1, Y: -2, Z: 3}
	if got := m.Inverse().TransformPoint(m.TransformPoint(p)); !got.NearEqual(p, 1e-3) {
		t.Errorf("round trip: got %v, want %v", got, p)
	}
}

func TestInverseProjection(t *testing.T) {
	vp := Perspective(1, 1.5, 0.1, 50).Mul(LookAt(Vec3{Z: 10}, Vec3{}, Vec3{Y: 1}))
	matNear(t, vp.Inverse().Mul(vp), Identity(), 1e-3)
}

func TestInverseSingular(t *testing.T) {
	m := Scaling(Vec3{X: 1, Y: 0, Z: 1})
	if got := m.Inverse(); got != Identity() {
		t.Errorf("singular inverse: got %v, want identity", got)
	}
}

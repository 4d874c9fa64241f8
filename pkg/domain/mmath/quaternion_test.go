// 指示: miu200521358
package mmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSlerpEndpoints(t *testing.T) {
	from := NewQuaternionFromAxisAngle(UNIT_Z_VEC3, 0.3)
	to := NewQuaternionFromAxisAngle(mgl64.Vec3{0, 1, 0}, 1.2)

	start := Slerp(from, to, 0)
	if !SameOrientation(start, from, 1e-9) {
		t.Fatalf("weight 0 should return from: got=%v want=%v", start, from)
	}
	end := Slerp(from, to, 1)
	if !NearEqualsQuat(end, to, 1e-9) {
		t.Fatalf("weight 1 should return to: got=%v want=%v", end, to)
	}
}

func TestSlerpTakesShortestArc(t *testing.T) {
	from := NewQuaternionFromAxisAngle(UNIT_Z_VEC3, 0.2)
	to := NewQuaternionFromAxisAngle(UNIT_Z_VEC3, 0.6).Scale(-1)

	mid := Slerp(from, to, 0.5)
	want := NewQuaternionFromAxisAngle(UNIT_Z_VEC3, 0.4)
	if !SameOrientation(mid, want, 1e-9) {
		t.Fatalf("midpoint should follow shortest arc: got=%v want=%v", mid, want)
	}
	end := Slerp(from, to, 1)
	if !NearEqualsQuat(end, to, 1e-9) {
		t.Fatalf("weight 1 should keep target sign: got=%v want=%v", end, to)
	}
}

func TestNewQuaternionFromFloat32sOrder(t *testing.T) {
	q := NewQuaternionFromFloat32s([4]float32{0.1, 0.2, 0.3, 0.9})
	if q.W != float64(float32(0.9)) || q.V[0] != float64(float32(0.1)) || q.V[2] != float64(float32(0.3)) {
		t.Fatalf("component order mismatch: %v", q)
	}
}

func TestAxisAngleMatchesHalfAngle(t *testing.T) {
	q := NewQuaternionFromAxisAngle(UNIT_X_VEC3, math.Pi/2)
	if math.Abs(q.W-math.Cos(math.Pi/4)) > 1e-12 || math.Abs(q.V[0]-math.Sin(math.Pi/4)) > 1e-12 {
		t.Fatalf("axis angle mismatch: %v", q)
	}
}

func TestLerpMidpoint(t *testing.T) {
	mid := Lerp(r3.Vec{}, r3.Vec{X: 1, Y: 2, Z: 3}, 0.5)
	if !NearEqualsVec3(mid, r3.Vec{X: 0.5, Y: 1, Z: 1.5}, 1e-12) {
		t.Fatalf("lerp midpoint mismatch: %v", mid)
	}
}

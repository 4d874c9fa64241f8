// 指示: miu200521358
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ZERO_VEC3 は零ベクトル。
var ZERO_VEC3 = r3.Vec{}

// NewVec3FromFloat32s はVMDの位置成分からベクトルを生成する。
func NewVec3FromFloat32s(values [3]float32) r3.Vec {
	return r3.Vec{X: float64(values[0]), Y: float64(values[1]), Z: float64(values[2])}
}

// Lerp はfromからtoへ重みtで線形補間する。
func Lerp(from r3.Vec, to r3.Vec, t float64) r3.Vec {
	return r3.Add(r3.Scale(1.0-t, from), r3.Scale(t, to))
}

// MulComponents は成分ごとの積を返す。
func MulComponents(v r3.Vec, factors r3.Vec) r3.Vec {
	return r3.Vec{X: v.X * factors.X, Y: v.Y * factors.Y, Z: v.Z * factors.Z}
}

// NearEqualsVec3 は成分ごとの差が閾値以内か判定する。
func NearEqualsVec3(a r3.Vec, b r3.Vec, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon && math.Abs(a.Z-b.Z) <= epsilon
}

// 指示: miu200521358
// Package mmath はボーン姿勢計算で使う四元数とベクトルの補助関数を提供する。
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// UNIT_X_VEC3 はX軸単位ベクトル。
	UNIT_X_VEC3 = mgl64.Vec3{1, 0, 0}
	// UNIT_Y_VEC3 はY軸単位ベクトル。
	UNIT_Y_VEC3 = mgl64.Vec3{0, 1, 0}
	// UNIT_Z_VEC3 はZ軸単位ベクトル。
	UNIT_Z_VEC3 = mgl64.Vec3{0, 0, 1}
)

// NewQuaternion は単位四元数を返す。
func NewQuaternion() mgl64.Quat {
	return mgl64.QuatIdent()
}

// NewQuaternionByValues はx,y,z,w順の成分から四元数を生成する。正規化はしない。
func NewQuaternionByValues(x, y, z, w float64) mgl64.Quat {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

// NewQuaternionFromFloat32s はVMDの回転成分(x,y,z,w)から四元数を生成する。
func NewQuaternionFromFloat32s(values [4]float32) mgl64.Quat {
	return NewQuaternionByValues(float64(values[0]), float64(values[1]), float64(values[2]), float64(values[3]))
}

// NewQuaternionFromAxisAngle は軸周りにangle(ラジアン)回転する四元数を返す。
func NewQuaternionFromAxisAngle(axis mgl64.Vec3, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axis)
}

// Slerp はfromからtoへの最短経路の球面線形補間を返す。
// 内積が負の場合はfrom側の符号を反転するため、t=1ではtoそのものに一致する。
func Slerp(from mgl64.Quat, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		from = from.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t)
}

// SameOrientation は符号違いを同一視して2つの回転が一致するか判定する。
func SameOrientation(a mgl64.Quat, b mgl64.Quat, epsilon float64) bool {
	an := a.Normalize()
	bn := b.Normalize()
	return math.Abs(math.Abs(an.Dot(bn))-1.0) <= epsilon
}

// NearEqualsQuat は成分ごとの差が閾値以内か判定する。
func NearEqualsQuat(a mgl64.Quat, b mgl64.Quat, epsilon float64) bool {
	if math.Abs(a.W-b.W) > epsilon {
		return false
	}
	for i := 0; i < 3; i++ {
		if math.Abs(a.V[i]-b.V[i]) > epsilon {
			return false
		}
	}
	return true
}

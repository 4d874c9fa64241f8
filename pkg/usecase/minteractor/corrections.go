// 指示: miu200521358
package minteractor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/mmath"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
)

// armRollSides は腕系ボーンのZ軸ロール補正の向き。右は正、左は負。
var armRollSides = map[string]float64{
	"rArm":   1.0,
	"rElbow": 1.0,
	"rHand":  1.0,
	"lArm":   -1.0,
	"lElbow": -1.0,
	"lHand":  -1.0,
}

// footBones は足ボーン集合。
var footBones = map[string]struct{}{
	"rFoot": {},
	"lFoot": {},
}

// rotationSigns は出力回転成分の符号を表す。
type rotationSigns struct {
	X float64
	Y float64
	Z float64
}

// defaultRotationSigns は全ボーン共通の出力符号。x,z を反転する。
var defaultRotationSigns = rotationSigns{X: -1, Y: 1, Z: -1}

// rotationSignOverrides は腕、手、足ボーンの出力符号。
// これらは生成分から x,z を再度反転して書き直すため、結果は共通符号と一致する。
var rotationSignOverrides = map[string]rotationSigns{
	"rArm":   {X: -1, Y: 1, Z: -1},
	"lArm":   {X: -1, Y: 1, Z: -1},
	"rElbow": {X: -1, Y: 1, Z: -1},
	"lElbow": {X: -1, Y: 1, Z: -1},
	"rHand":  {X: -1, Y: 1, Z: -1},
	"lHand":  {X: -1, Y: 1, Z: -1},
	"rFoot":  {X: -1, Y: 1, Z: -1},
	"lFoot":  {X: -1, Y: 1, Z: -1},
}

// isFootBone は足ボーンか判定する。
func isFootBone(bone string) bool {
	_, ok := footBones[bone]
	return ok
}

// holdsLastPose は最終ステップ後も姿勢を保持するボーンか判定する。
func holdsLastPose(bone string) bool {
	return bone == rig.RootBone || isFootBone(bone)
}

// applyBoneCorrections はボーン種別ごとの固定補正回転を右から掛ける。
// 補正は元データの値に関わらず常に適用する。
func applyBoneCorrections(bone string, rotation mgl64.Quat, opts RetargetOptions) mgl64.Quat {
	if side, ok := armRollSides[bone]; ok {
		rotation = rotation.Mul(mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, side*opts.ArmRotation))
	}
	if opts.Heels && isFootBone(bone) {
		rotation = rotation.Mul(mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, -opts.HeelRotation))
	}
	return rotation
}

// toDestinationRotation は回転を変換先の座標系の成分へ変換する。
func toDestinationRotation(bone string, rotation mgl64.Quat) mgl64.Quat {
	signs := defaultRotationSigns
	if override, ok := rotationSignOverrides[bone]; ok {
		signs = override
	}
	return mmath.NewQuaternionByValues(
		rotation.V[0]*signs.X,
		rotation.V[1]*signs.Y,
		rotation.V[2]*signs.Z,
		rotation.W,
	)
}

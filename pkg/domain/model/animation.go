// 指示: miu200521358
package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// AnimationStep はVaMのアニメーションステップ1件を表す。
type AnimationStep struct {
	TimeStep   float64
	PositionOn bool
	RotationOn bool
	// HasPose がfalseの場合は位置・回転を出力しない(終端ステップ)。
	HasPose  bool
	Position r3.Vec
	// Rotation は変換先の座標系へ符号変換済みの成分。
	Rotation mgl64.Quat
}

// BoneAnimation は1ボーン分のステップ列を表す。
type BoneAnimation struct {
	Bone  string
	Steps []AnimationStep
}

// RetargetResult はリターゲット結果を表す。
type RetargetResult struct {
	Animations     []BoneAnimation
	RecordedLength float64
}

// StepCount は全ボーンのステップ総数を返す。
func (r *RetargetResult) StepCount() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, animation := range r.Animations {
		count += len(animation.Steps)
	}
	return count
}

// RestPose は変換先リグのボーン基準姿勢を表す。
type RestPose struct {
	Position r3.Vec
	Rotation mgl64.Quat
}

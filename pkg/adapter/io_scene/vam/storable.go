// 指示: miu200521358
package vam

import "github.com/miu200521358/mu_vmd2vam/pkg/domain/model"

// animationStorable は "<bone>Animation" ストレージのJSON表現。
type animationStorable struct {
	ID    string          `json:"id"`
	Steps []animationStep `json:"steps"`
}

// animationStep はステップ1件のJSON表現。数値も真偽値も文字列で表す。
type animationStep struct {
	TimeStep   string         `json:"timeStep"`
	PositionOn string         `json:"positionOn"`
	RotationOn string         `json:"rotationOn"`
	Position   *vectorValue   `json:"position,omitempty"`
	Rotation   *rotationValue `json:"rotation,omitempty"`
}

// vectorValue は位置のJSON表現。
type vectorValue struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// rotationValue は回転のJSON表現。
type rotationValue struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
	W string `json:"w"`
}

// newAnimationStorable はボーンアニメーションからJSON表現を生成する。
func newAnimationStorable(animation model.BoneAnimation) animationStorable {
	storable := animationStorable{
		ID:    animation.Bone + animationSuffix,
		Steps: make([]animationStep, 0, len(animation.Steps)),
	}
	for _, step := range animation.Steps {
		encoded := animationStep{
			TimeStep:   FormatDecimal(step.TimeStep),
			PositionOn: formatBool(step.PositionOn),
			RotationOn: formatBool(step.RotationOn),
		}
		if step.HasPose {
			encoded.Position = &vectorValue{
				X: FormatDecimal(step.Position.X),
				Y: FormatDecimal(step.Position.Y),
				Z: FormatDecimal(step.Position.Z),
			}
			encoded.Rotation = &rotationValue{
				X: FormatDecimal(step.Rotation.V[0]),
				Y: FormatDecimal(step.Rotation.V[1]),
				Z: FormatDecimal(step.Rotation.V[2]),
				W: FormatDecimal(step.Rotation.W),
			}
		}
		storable.Steps = append(storable.Steps, encoded)
	}
	return storable
}

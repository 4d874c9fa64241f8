// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	minimumRecordedLength = 1.0
)

// RetargetOptions はリターゲット時の換算値と補正値を表す。
type RetargetOptions struct {
	FPS                float64
	TimePadSeconds     float64
	PositionFactor     float64
	ArmRotation        float64
	HeelRotation       float64
	Heels              bool
	CenterHeightOffset float64
	CenterZOffset      float64
}

// DefaultRetargetOptions は既定のリターゲット設定を返す。
func DefaultRetargetOptions() RetargetOptions {
	return RetargetOptions{
		FPS:                30.0,
		TimePadSeconds:     1.0,
		PositionFactor:     0.08,
		ArmRotation:        0.8,
		HeelRotation:       3.14 / 3,
		Heels:              true,
		CenterHeightOffset: -0.05,
		CenterZOffset:      0.0,
	}
}

// Validate は設定値を検証する。
func (o RetargetOptions) Validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("FPSは正の値を指定してください: %v", o.FPS)
	}
	if o.TimePadSeconds < 0 {
		return fmt.Errorf("開始余白秒は0以上を指定してください: %v", o.TimePadSeconds)
	}
	return nil
}

// Retarget は再構築したタイムラインを変換先のステップ列へ変換する。
func Retarget(
	timeline *model.Timeline,
	variant rig.Variant,
	restPoses moutput.IRestPoseSource,
	opts RetargetOptions,
) (*model.RetargetResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if restPoses == nil {
		return nil, fmt.Errorf("基準姿勢の参照先が設定されていません")
	}

	result := &model.RetargetResult{RecordedLength: minimumRecordedLength}
	frameInterval := 1.0 / opts.FPS
	for _, bone := range timeline.Bones() {
		boneTimeline, _ := timeline.Get(bone)
		frames := boneTimeline.Frames()
		if len(frames) == 0 {
			continue
		}
		rest, err := restPoses.RestPose(bone)
		if err != nil {
			return nil, err
		}

		steps := make([]model.AnimationStep, 0, len(frames)+2)
		for i, frame := range frames {
			state, _ := boneTimeline.At(frame)
			step := buildAnimationStep(bone, frame, state, rest, variant, opts)
			if step.TimeStep > result.RecordedLength {
				result.RecordedLength = step.TimeStep
			}
			if i == 0 {
				// 再生開始時は変換先リグの基準位置から始める。
				initial := step
				initial.TimeStep = 0
				initial.Position = rest.Position
				steps = append(steps, initial)
			}
			steps = append(steps, step)
		}

		if !holdsLastPose(bone) {
			steps = append(steps, model.AnimationStep{
				TimeStep: steps[len(steps)-1].TimeStep + frameInterval,
			})
		}
		result.Animations = append(result.Animations, model.BoneAnimation{Bone: bone, Steps: steps})
		logRetargetDebug("ステップ生成完了: bone=%s steps=%d", bone, len(steps))
	}
	return result, nil
}

// buildAnimationStep は1フレーム分のステップを生成する。
func buildAnimationStep(
	bone string,
	frame int,
	state model.BoneState,
	rest model.RestPose,
	variant rig.Variant,
	opts RetargetOptions,
) model.AnimationStep {
	position := r3.Add(r3.Vec{
		X: -state.Position.X * opts.PositionFactor,
		Y: state.Position.Y * opts.PositionFactor,
		Z: -state.Position.Z * opts.PositionFactor,
	}, rest.Position)
	if bone == rig.RootBone {
		position.Y += opts.CenterHeightOffset
		position.Z += opts.CenterZOffset
	}

	return model.AnimationStep{
		TimeStep:   float64(frame)/opts.FPS + opts.TimePadSeconds,
		PositionOn: bone == rig.RootBone || (variant == rig.VariantIK && isFootBone(bone)),
		RotationOn: bone == rig.RootBone || state.RotationEnabled,
		HasPose:    true,
		Position:   position,
		Rotation:   toDestinationRotation(bone, applyBoneCorrections(bone, state.Rotation, opts)),
	}
}

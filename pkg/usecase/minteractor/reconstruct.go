// 指示: miu200521358
package minteractor

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/mmath"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
)

// ReconstructReport は再構築時の回復可能な警告を表す。
type ReconstructReport struct {
	LookupErrors    []*merrors.LookupError
	DuplicateFrames int
}

// Reconstruct は疎なキーフレームからボーンごとの連続フレーム状態を再構築する。
// ボーンはTopologyの処理順に処理し、親ボーンの状態を先に確定させる。
func Reconstruct(tracks *model.BoneTracks, topology *rig.Topology) (*model.Timeline, *ReconstructReport) {
	timeline := model.NewTimeline()
	report := &ReconstructReport{}

	for _, label := range topology.Order() {
		bone, ok := topology.DestinationName(label)
		if !ok {
			lookupErr := merrors.NewLookupError(label, merrors.LookupReasonUnknownBone, "")
			report.LookupErrors = append(report.LookupErrors, lookupErr)
			logReconstructWarn("%s: %s", model.WarningUnknownBone, lookupErr.Error())
			continue
		}

		frames := tracks.Get(label)
		if len(frames) == 0 {
			logReconstructDebug("%s: キーフレームなし bone=%s label=%s", model.WarningEmptyTrack, bone, label)
			continue
		}
		slices.SortStableFunc(frames, func(a, b model.BoneKeyframe) int {
			return cmp.Compare(a.FrameNumber, b.FrameNumber)
		})

		parentTimeline := resolveParentTimeline(bone, topology, timeline, report)
		boneTimeline, duplicates := reconstructBone(frames, parentTimeline)
		report.DuplicateFrames += duplicates
		timeline.Set(bone, boneTimeline)
		logReconstructDebug(
			"ボーン再構築完了: bone=%s keyframes=%d frames=%d-%d",
			bone,
			len(frames),
			boneTimeline.First(),
			boneTimeline.Last(),
		)
	}
	return timeline, report
}

// resolveParentTimeline は回転合成に使う親ボーンのタイムラインを解決する。
// 親を持たないボーン、または親が再構築されていないボーンはnilを返す。
func resolveParentTimeline(
	bone string,
	topology *rig.Topology,
	timeline *model.Timeline,
	report *ReconstructReport,
) *model.BoneTimeline {
	parent, hasDependency := topology.Dependency(bone)
	if !hasDependency {
		return nil
	}
	parentTimeline, ok := timeline.Get(parent)
	if !ok {
		lookupErr := merrors.NewLookupError(bone, merrors.LookupReasonMissingDependency, parent)
		report.LookupErrors = append(report.LookupErrors, lookupErr)
		logReconstructWarn("%s: %s", model.WarningMissingDependency, lookupErr.Error())
		return nil
	}
	return parentTimeline
}

// reconstructBone は1ボーン分のキーフレーム(フレーム番号順)から連続フレーム状態を生成する。
func reconstructBone(frames []model.BoneKeyframe, parentTimeline *model.BoneTimeline) (*model.BoneTimeline, int) {
	first := frames[0]
	seedFrame := int(first.FrameNumber)
	seed := model.BoneState{
		Position:        mmath.NewVec3FromFloat32s(first.Location),
		Rotation:        parentRotationAtOrBefore(parentTimeline, seedFrame).Mul(mmath.NewQuaternionFromFloat32s(first.Rotation)),
		RotationEnabled: !first.HasNullRotationAxis(),
	}
	boneTimeline := model.NewBoneTimeline(seedFrame, seed)

	duplicates := 0
	last := seedFrame
	for _, keyframe := range frames[1:] {
		current := int(keyframe.FrameNumber)
		target := mmath.NewVec3FromFloat32s(keyframe.Location)
		candidate := parentRotationAtOrBefore(parentTimeline, current).Mul(mmath.NewQuaternionFromFloat32s(keyframe.Rotation))

		if current == last {
			// 同一フレームは補間せず新しい値で置き換える。
			enabled := true
			if current == boneTimeline.First() {
				enabled = !keyframe.HasNullRotationAxis()
			}
			boneTimeline.Put(current, model.BoneState{Position: target, Rotation: candidate, RotationEnabled: enabled})
			duplicates++
			logReconstructDebug("%s: frame=%d", model.WarningDuplicateFrame, current)
			continue
		}

		lastState, _ := boneTimeline.At(last)
		span := float64(current - last)
		for frame := last + 1; frame <= current; frame++ {
			weight := float64(frame-last) / span
			boneTimeline.Put(frame, model.BoneState{
				Position:        mmath.Lerp(lastState.Position, target, weight),
				Rotation:        mmath.Slerp(lastState.Rotation, candidate, weight),
				RotationEnabled: true,
			})
		}
		last = current
	}
	return boneTimeline, duplicates
}

// parentRotationAtOrBefore は指定フレーム以前で最も近い親の回転を返す。無い場合は単位回転。
func parentRotationAtOrBefore(parentTimeline *model.BoneTimeline, frame int) mgl64.Quat {
	if state, ok := parentTimeline.NearestAtOrBefore(frame); ok {
		return state.Rotation
	}
	return mmath.NewQuaternion()
}

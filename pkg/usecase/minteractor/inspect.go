// 指示: miu200521358
package minteractor

import (
	"slices"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
)

// Inspect はVMDモーションを読み込み、ボーンごとの概要を返す。
func (uc *Vmd2VamUsecase) Inspect(path string, profile *rig.Profile) (*InspectResult, error) {
	resolvedProfile := rig.DefaultProfile()
	if profile != nil {
		resolvedProfile = *profile
	}
	motion, err := uc.LoadMotion(path, &resolvedProfile)
	if err != nil {
		return nil, err
	}
	variant := rig.SelectVariant(motion.BoneTracks)
	topology, err := rig.NewTopology(variant, resolvedProfile)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{
		ModelName: motion.ModelName,
		Variant:   variant,
		Keyframes: motion.BoneTracks.Len(),
	}
	for _, label := range motion.BoneTracks.Names() {
		frames := motion.BoneTracks.Get(label)
		bone := InspectBone{Label: label, Keyframes: len(frames)}
		bone.Destination, bone.Mapped = topology.DestinationName(label)
		if len(frames) > 0 {
			bone.FirstFrame = frames[0].FrameNumber
			bone.LastFrame = frames[0].FrameNumber
			for _, frame := range frames[1:] {
				bone.FirstFrame = min(bone.FirstFrame, frame.FrameNumber)
				bone.LastFrame = max(bone.LastFrame, frame.FrameNumber)
			}
		}
		result.Bones = append(result.Bones, bone)
	}
	slices.SortStableFunc(result.Bones, func(a, b InspectBone) int {
		if a.Mapped != b.Mapped {
			if a.Mapped {
				return -1
			}
			return 1
		}
		return 0
	})
	return result, nil
}

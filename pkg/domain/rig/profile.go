// 指示: miu200521358
// Package rig はMMDボーンとVaMボーンの対応と依存関係を提供する。
package rig

import (
	"fmt"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/tiendc/go-deepcopy"
)

const (
	// RootBone は位置チャンネルを常に持つ中心ボーン。
	RootBone = "hip"
)

// defaultBones はMMDボーン名からVaMボーン名への対応。
var defaultBones = map[string]string{
	"Head":          "head",
	"RightElbow":    "rElbow",
	"LeftElbow":     "lElbow",
	"RightArm":      "rArm",
	"LeftArm":       "lArm",
	"RightShoulder": "rShoulder",
	"LeftShoulder":  "lShoulder",
	"RightWrist":    "rHand",
	"LeftWrist":     "lHand",
	"RightLegIK":    "rFoot",
	"LeftLegIK":     "lFoot",
	"RightAnkle":    "rFoot",
	"LeftAnkle":     "lFoot",
	"RightToeTipIK": "rToe",
	"LeftToeTipIK":  "lToe",
	"UpperBody":     "abdomen2",
	"LowerBody":     "pelvis",
	"LeftKnee":      "lKnee",
	"RightKnee":     "rKnee",
	"Center":        RootBone,
	"Neck":          "neck",
	"LeftLeg":       "lThigh",
	"RightLeg":      "rThigh",

	"LeftRingFinger1":  "lRing1",
	"LeftRingFinger2":  "lRing2",
	"LeftRingFinger3":  "lRing3",
	"RightRingFinger1": "rRing1",
	"RightRingFinger2": "rRing2",
	"RightRingFinger3": "rRing3",

	"LeftIndexFinger1":  "lIndex1",
	"LeftIndexFinger2":  "lIndex2",
	"LeftIndexFinger3":  "lIndex3",
	"RightIndexFinger1": "rIndex1",
	"RightIndexFinger2": "rIndex2",
	"RightIndexFinger3": "rIndex3",

	"LeftMiddleFinger1":  "lMid1",
	"LeftMiddleFinger2":  "lMid2",
	"LeftMiddleFinger3":  "lMid3",
	"RightMiddleFinger1": "rMid1",
	"RightMiddleFinger2": "rMid2",
	"RightMiddleFinger3": "rMid3",

	"LeftLittleFinger1":  "lPinky1",
	"LeftLittleFinger2":  "lPinky2",
	"LeftLittleFinger3":  "lPinky3",
	"RightLittleFinger1": "rPinky1",
	"RightLittleFinger2": "rPinky2",
	"RightLittleFinger3": "rPinky3",

	"LeftThumbFinger1":  "lThumb1",
	"LeftThumbFinger2":  "lThumb2",
	"LeftThumbFinger3":  "lThumb3",
	"RightThumbFinger1": "rThumb1",
	"RightThumbFinger2": "rThumb2",
	"RightThumbFinger3": "rThumb3",
}

// defaultDependencies はVaMボーンから回転合成に使う親ボーンへの対応。
var defaultDependencies = map[string]string{
	"abdomen2":  RootBone,
	"pelvis":    RootBone,
	"rShoulder": "abdomen2",
	"rArm":      "rShoulder",
	"rElbow":    "rArm",
	"rHand":     "rElbow",
	"lShoulder": "abdomen2",
	"lArm":      "lShoulder",
	"lElbow":    "lArm",
	"lHand":     "lElbow",
	"neck":      "abdomen2",
	"head":      "neck",
	"lThigh":    "pelvis",
	"rThigh":    "pelvis",
	"lKnee":     "lThigh",
	"rKnee":     "rThigh",
}

// Profile はボーン対応表、依存表、名前置換規則の組を表す。
type Profile struct {
	Bones        map[string]string
	Dependencies map[string]string
	NameRules    []model.NameRule
}

// DefaultProfile はMMDからVaMへの既定プロファイルを複製して返す。
func DefaultProfile() Profile {
	profile := Profile{
		Bones:        defaultBones,
		Dependencies: defaultDependencies,
		NameRules:    model.DefaultNameRules,
	}
	copied, err := profile.Clone()
	if err != nil {
		// 既定表は文字列のみで構成されるため複製は失敗しない。
		panic(err)
	}
	return copied
}

// Clone はプロファイルを深く複製する。
func (p Profile) Clone() (Profile, error) {
	var copied Profile
	if err := deepcopy.Copy(&copied, p); err != nil {
		return Profile{}, fmt.Errorf("プロファイル複製失敗: %w", err)
	}
	if copied.Bones == nil {
		copied.Bones = map[string]string{}
	}
	if copied.Dependencies == nil {
		copied.Dependencies = map[string]string{}
	}
	return copied, nil
}

// Merge は上書き内容を反映した新しいプロファイルを返す。
// 追加の名前置換規則は既存規則の後に適用される。
func (p Profile) Merge(overrides Profile) (Profile, error) {
	merged, err := p.Clone()
	if err != nil {
		return Profile{}, err
	}
	for label, bone := range overrides.Bones {
		merged.Bones[label] = bone
	}
	for bone, parent := range overrides.Dependencies {
		if parent == "" {
			delete(merged.Dependencies, bone)
			continue
		}
		merged.Dependencies[bone] = parent
	}
	merged.NameRules = append(merged.NameRules, overrides.NameRules...)
	return merged, nil
}

// Translator はプロファイルの置換規則で名前置換関数を生成する。
func (p Profile) Translator() model.NameTranslator {
	return model.NewNameTranslator(p.NameRules)
}

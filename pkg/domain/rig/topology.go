// 指示: miu200521358
package rig

import (
	"slices"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
)

// Variant は脚ボーンの構成種別を表す。
type Variant int

const (
	// VariantDirect は足首ボーンで脚を動かす構成。
	VariantDirect Variant = iota
	// VariantIK は足IKボーンで脚を動かす構成。
	VariantIK
)

// String は構成種別名を返す。
func (v Variant) String() string {
	switch v {
	case VariantIK:
		return "ik"
	case VariantDirect:
		return "direct"
	default:
		return "unknown"
	}
}

const (
	leftLegIKLabel  = "LeftLegIK"
	rightLegIKLabel = "RightLegIK"
)

// bodyOrder は中心から末端へ向かう処理順。
var bodyOrder = []string{
	"Center",
	"UpperBody", "Neck", "Head",
	"LowerBody", "LeftLeg", "RightLeg", "RightKnee", "LeftKnee",
	"RightShoulder", "LeftShoulder", "LeftArm", "RightArm",
	"LeftElbow", "RightElbow", "RightWrist", "LeftWrist",
}

var (
	ikLegOrder     = []string{leftLegIKLabel, rightLegIKLabel}
	directLegOrder = []string{"LeftAnkle", "RightAnkle"}
)

// directLegDependencies は足首構成で足ボーンに付与する親。
var directLegDependencies = map[string]string{
	"rFoot": "rKnee",
	"lFoot": "lKnee",
}

// SelectVariant はいずれかの足IKボーンが2件以上のキーフレームを持つ場合にIK構成を選ぶ。
func SelectVariant(tracks *model.BoneTracks) Variant {
	if tracks.Count(leftLegIKLabel) > 1 || tracks.Count(rightLegIKLabel) > 1 {
		return VariantIK
	}
	return VariantDirect
}

// Topology は構成種別ごとの処理順、ボーン対応、依存関係を表す。
// 生成後は変更しない。
type Topology struct {
	variant      Variant
	order        []string
	bones        map[string]string
	dependencies map[string]string
}

// NewTopology は構成種別とプロファイルからTopologyを生成する。
func NewTopology(variant Variant, profile Profile) (*Topology, error) {
	copied, err := profile.Clone()
	if err != nil {
		return nil, err
	}
	order := slices.Clone(bodyOrder)
	if variant == VariantIK {
		order = append(order, ikLegOrder...)
	} else {
		order = append(order, directLegOrder...)
		for bone, parent := range directLegDependencies {
			copied.Dependencies[bone] = parent
		}
	}
	return &Topology{
		variant:      variant,
		order:        order,
		bones:        copied.Bones,
		dependencies: copied.Dependencies,
	}, nil
}

// Variant は構成種別を返す。
func (t *Topology) Variant() Variant {
	return t.variant
}

// UsesIK はIK構成か判定する。
func (t *Topology) UsesIK() bool {
	return t.variant == VariantIK
}

// Order は処理順のMMDボーン名一覧を返す。
func (t *Topology) Order() []string {
	return slices.Clone(t.order)
}

// DestinationName はMMDボーン名に対応するVaMボーン名を返す。
func (t *Topology) DestinationName(label string) (string, bool) {
	bone, ok := t.bones[label]
	return bone, ok
}

// Dependency はVaMボーンの親ボーンを返す。
func (t *Topology) Dependency(bone string) (string, bool) {
	parent, ok := t.dependencies[bone]
	return parent, ok
}

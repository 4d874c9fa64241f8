// 指示: miu200521358
package model

import "slices"

const (
	// InterpolationLength はキーフレーム補間曲線のバイト数。
	InterpolationLength = 64
)

// BoneKeyframe はVMDのボーンキーフレーム1件を表す。
type BoneKeyframe struct {
	FrameNumber   uint32
	Location      [3]float32
	Rotation      [4]float32 // x, y, z, w
	Interpolation [InterpolationLength]int8
}

// HasNullRotationAxis は回転のx,y,z成分がすべて0か判定する。
func (kf BoneKeyframe) HasNullRotationAxis() bool {
	return kf.Rotation[0] == 0 && kf.Rotation[1] == 0 && kf.Rotation[2] == 0
}

// BoneTracks はボーン名ごとのキーフレーム列を読込順で保持する。
type BoneTracks struct {
	names       []string
	frames      map[string][]BoneKeyframe
	recordOrder []string
}

// NewBoneTracks は空のBoneTracksを生成する。
func NewBoneTracks() *BoneTracks {
	return &BoneTracks{frames: map[string][]BoneKeyframe{}}
}

// Append はボーン名に対してキーフレームを末尾追加する。
func (t *BoneTracks) Append(name string, keyframe BoneKeyframe) {
	if t.frames == nil {
		t.frames = map[string][]BoneKeyframe{}
	}
	if _, exists := t.frames[name]; !exists {
		t.names = append(t.names, name)
	}
	t.frames[name] = append(t.frames[name], keyframe)
	t.recordOrder = append(t.recordOrder, name)
}

// Names は初出順のボーン名一覧を返す。
func (t *BoneTracks) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}

// Get は指定ボーンのキーフレーム列の複製を返す。
func (t *BoneTracks) Get(name string) []BoneKeyframe {
	if t == nil {
		return nil
	}
	return slices.Clone(t.frames[name])
}

// Count は指定ボーンのキーフレーム数を返す。
func (t *BoneTracks) Count(name string) int {
	if t == nil {
		return 0
	}
	return len(t.frames[name])
}

// Len は全レコード数を返す。
func (t *BoneTracks) Len() int {
	if t == nil {
		return 0
	}
	return len(t.recordOrder)
}

// RecordOrder はファイル上のレコード順のボーン名一覧を返す。
func (t *BoneTracks) RecordOrder() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.recordOrder)
}

// Motion はVMDモーションのボーン部分を表す。
type Motion struct {
	ModelName  string
	BoneTracks *BoneTracks
}

// NewMotion は空のMotionを生成する。
func NewMotion(modelName string) *Motion {
	return &Motion{ModelName: modelName, BoneTracks: NewBoneTracks()}
}

// 指示: miu200521358
package model

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoneState は1フレーム分のボーンの絶対姿勢を表す。
type BoneState struct {
	Position        r3.Vec
	Rotation        mgl64.Quat
	RotationEnabled bool
}

// BoneTimeline は最初のキーフレームから最後のキーフレームまでの連続したフレーム状態を保持する。
type BoneTimeline struct {
	first  int
	states []BoneState
}

// NewBoneTimeline は開始フレームの状態からBoneTimelineを生成する。
func NewBoneTimeline(first int, seed BoneState) *BoneTimeline {
	return &BoneTimeline{first: first, states: []BoneState{seed}}
}

// First は開始フレームを返す。
func (bt *BoneTimeline) First() int {
	return bt.first
}

// Last は最終フレームを返す。
func (bt *BoneTimeline) Last() int {
	return bt.first + len(bt.states) - 1
}

// Len は保持フレーム数を返す。
func (bt *BoneTimeline) Len() int {
	if bt == nil {
		return 0
	}
	return len(bt.states)
}

// Put は指定フレームの状態を設定する。
// 最終フレームの次なら末尾に追加し、範囲内なら上書きする。それ以外は何もしない。
func (bt *BoneTimeline) Put(frame int, state BoneState) bool {
	switch {
	case frame == bt.Last()+1:
		bt.states = append(bt.states, state)
		return true
	case frame >= bt.first && frame <= bt.Last():
		bt.states[frame-bt.first] = state
		return true
	default:
		return false
	}
}

// At は指定フレームの状態を返す。
func (bt *BoneTimeline) At(frame int) (BoneState, bool) {
	if bt == nil || frame < bt.first || frame > bt.Last() {
		return BoneState{}, false
	}
	return bt.states[frame-bt.first], true
}

// NearestAtOrBefore は指定フレーム以前で最も近い状態を返す。
func (bt *BoneTimeline) NearestAtOrBefore(frame int) (BoneState, bool) {
	if bt == nil || len(bt.states) == 0 || frame < bt.first {
		return BoneState{}, false
	}
	if frame > bt.Last() {
		frame = bt.Last()
	}
	return bt.states[frame-bt.first], true
}

// Frames はフレーム番号の昇順一覧を返す。
func (bt *BoneTimeline) Frames() []int {
	if bt == nil {
		return nil
	}
	frames := make([]int, len(bt.states))
	for i := range bt.states {
		frames[i] = bt.first + i
	}
	return frames
}

// Timeline は変換先ボーン名ごとのBoneTimelineを処理順で保持する。
type Timeline struct {
	order []string
	bones map[string]*BoneTimeline
}

// NewTimeline は空のTimelineを生成する。
func NewTimeline() *Timeline {
	return &Timeline{bones: map[string]*BoneTimeline{}}
}

// Set はボーンのタイムラインを登録する。既存登録は置き換えるが順序は維持する。
func (t *Timeline) Set(bone string, boneTimeline *BoneTimeline) {
	if _, exists := t.bones[bone]; !exists {
		t.order = append(t.order, bone)
	}
	t.bones[bone] = boneTimeline
}

// Get はボーンのタイムラインを返す。
func (t *Timeline) Get(bone string) (*BoneTimeline, bool) {
	if t == nil {
		return nil, false
	}
	boneTimeline, exists := t.bones[bone]
	return boneTimeline, exists
}

// Bones は登録順のボーン名一覧を返す。
func (t *Timeline) Bones() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Len は登録ボーン数を返す。
func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

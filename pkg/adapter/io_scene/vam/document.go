// 指示: miu200521358
package vam

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// CoreControlAtom は全体再生設定を持つアトムID。
	CoreControlAtom = "CoreControl"
	// MotionAnimationMasterStorable は全体再生長を持つストレージID。
	MotionAnimationMasterStorable = "MotionAnimationMaster"

	controlSuffix   = "Control"
	animationSuffix = "Animation"
	// DefaultIndent は保存時の既定インデント。
	DefaultIndent = "   "
)

var (
	// ErrAtomNotFound はアトムが見つからないことを表す。
	ErrAtomNotFound = errors.New("atom not found")
	// ErrStorableNotFound はストレージが見つからないことを表す。
	ErrStorableNotFound = errors.New("storable not found")
	// ErrPoseFieldMissing は位置成分が無いことを表す。
	ErrPoseFieldMissing = errors.New("pose field missing")
)

// SceneDocument はVaMシーンJSONを生のバイト列のまま編集する。
// 未知の要素はそのまま保持する。
type SceneDocument struct {
	raw       []byte
	atomName  string
	atomIndex int
	indent    string
}

// NewSceneDocument はJSONバイト列からSceneDocumentを生成する。
func NewSceneDocument(raw []byte, atomName string) (*SceneDocument, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("シーンJSONの解析に失敗しました")
	}
	doc := &SceneDocument{raw: raw, atomName: atomName, indent: DefaultIndent}
	atomIndex, ok := doc.findAtomIndex(atomName)
	if !ok {
		return nil, merrors.NewDestinationMismatchError(atomName, "", ErrAtomNotFound)
	}
	doc.atomIndex = atomIndex
	return doc, nil
}

// SetIndent は保存時のインデントを設定する。
func (d *SceneDocument) SetIndent(indent string) {
	d.indent = indent
}

// AtomName は挿入先アトムIDを返す。
func (d *SceneDocument) AtomName() string {
	return d.atomName
}

// RestPose はボーンの基準姿勢を返す。"<bone>Control" を優先し、無ければボーンIDで探す。
func (d *SceneDocument) RestPose(bone string) (model.RestPose, error) {
	storablesPath := fmt.Sprintf("atoms.%d.storables", d.atomIndex)
	storable, ok := findStorable(d.raw, storablesPath, bone+controlSuffix)
	if !ok {
		storable, ok = findStorable(d.raw, storablesPath, bone)
	}
	if !ok {
		return model.RestPose{}, merrors.NewDestinationMismatchError(d.atomName, bone, ErrStorableNotFound)
	}

	position := storable.Get("position")
	if !position.Exists() || !position.Get("x").Exists() || !position.Get("y").Exists() || !position.Get("z").Exists() {
		return model.RestPose{}, merrors.NewDestinationMismatchError(d.atomName, storable.Get("id").String(), ErrPoseFieldMissing)
	}
	rest := model.RestPose{
		Position: r3.Vec{
			X: position.Get("x").Float(),
			Y: position.Get("y").Float(),
			Z: position.Get("z").Float(),
		},
		Rotation: mgl64.QuatIdent(),
	}
	if rotation := storable.Get("rotation"); rotation.Get("w").Exists() {
		rest.Rotation = mgl64.Quat{
			W: rotation.Get("w").Float(),
			V: mgl64.Vec3{rotation.Get("x").Float(), rotation.Get("y").Float(), rotation.Get("z").Float()},
		}
	}
	return rest, nil
}

// AppendAnimation は "<bone>Animation" ストレージを挿入先アトムの末尾へ追加する。
func (d *SceneDocument) AppendAnimation(animation model.BoneAnimation) error {
	payload, err := json.Marshal(newAnimationStorable(animation))
	if err != nil {
		return fmt.Errorf("アニメーションJSON生成失敗: bone=%s: %w", animation.Bone, err)
	}
	raw, err := sjson.SetRawBytes(d.raw, fmt.Sprintf("atoms.%d.storables.-1", d.atomIndex), payload)
	if err != nil {
		return fmt.Errorf("アニメーション挿入失敗: bone=%s: %w", animation.Bone, err)
	}
	d.raw = raw
	return nil
}

// SetRecordedLength は CoreControl の MotionAnimationMaster へ記録長と再生範囲を設定する。
func (d *SceneDocument) SetRecordedLength(seconds float64) error {
	atomIndex, ok := d.findAtomIndex(CoreControlAtom)
	if !ok {
		return merrors.NewDestinationMismatchError(CoreControlAtom, MotionAnimationMasterStorable, ErrAtomNotFound)
	}
	storablesPath := fmt.Sprintf("atoms.%d.storables", atomIndex)
	storableIndex, ok := findStorableIndex(d.raw, storablesPath, MotionAnimationMasterStorable)
	if !ok {
		return merrors.NewDestinationMismatchError(CoreControlAtom, MotionAnimationMasterStorable, ErrStorableNotFound)
	}

	basePath := fmt.Sprintf("%s.%d", storablesPath, storableIndex)
	length := FormatDecimal(seconds)
	values := []struct {
		key   string
		value string
	}{
		{"recordedLength", length},
		{"startTimestep", "0"},
		{"stopTimestep", length},
	}
	raw := d.raw
	for _, entry := range values {
		updated, err := sjson.SetBytes(raw, basePath+"."+entry.key, entry.value)
		if err != nil {
			return fmt.Errorf("記録長設定失敗: %s: %w", entry.key, err)
		}
		raw = updated
	}
	d.raw = raw
	return nil
}

// Bytes は整形済みのJSONバイト列を返す。
func (d *SceneDocument) Bytes() ([]byte, error) {
	if !gjson.ValidBytes(d.raw) {
		return nil, fmt.Errorf("シーンJSONが不正な状態です")
	}
	options := *pretty.DefaultOptions
	options.Indent = d.indent
	return pretty.PrettyOptions(d.raw, &options), nil
}

// findAtomIndex はアトムIDの位置を返す。
func (d *SceneDocument) findAtomIndex(atomName string) (int, bool) {
	index := -1
	current := 0
	gjson.GetBytes(d.raw, "atoms").ForEach(func(_, atom gjson.Result) bool {
		if atom.Get("id").String() == atomName {
			index = current
			return false
		}
		current++
		return true
	})
	return index, index >= 0
}

// findStorableIndex はストレージIDの位置を返す。
func findStorableIndex(raw []byte, storablesPath string, id string) (int, bool) {
	index := -1
	current := 0
	gjson.GetBytes(raw, storablesPath).ForEach(func(_, storable gjson.Result) bool {
		if storable.Get("id").String() == id {
			index = current
			return false
		}
		current++
		return true
	})
	return index, index >= 0
}

// findStorable はストレージIDに一致する要素を返す。
func findStorable(raw []byte, storablesPath string, id string) (gjson.Result, bool) {
	index, ok := findStorableIndex(raw, storablesPath, id)
	if !ok {
		return gjson.Result{}, false
	}
	return gjson.GetBytes(raw, fmt.Sprintf("%s.%d", storablesPath, index)), true
}

// FormatDecimal は数値をシーンの文字列数値表記へ変換する。整数値も小数点付きで表す。
func FormatDecimal(value float64) string {
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(text, ".NI") {
		text += ".0"
	}
	return text
}

// formatBool は真偽値をシーンの文字列表記へ変換する。
func formatBool(value bool) string {
	return strconv.FormatBool(value)
}

// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_vmd2vam/pkg/domain/model"

// IMotionReader はモーション読み込み契約を表す。
type IMotionReader interface {
	// CanLoad は読み込み可否を判定する。
	CanLoad(path string) bool
	// Load はモーションを読み込む。
	Load(path string) (*model.Motion, error)
}

// IRestPoseSource は変換先リグの基準姿勢参照契約を表す。
type IRestPoseSource interface {
	// RestPose はボーンの基準姿勢を返す。見つからない場合はDestinationMismatchErrorを返す。
	RestPose(bone string) (model.RestPose, error)
}

// ISceneDocument は変換先シーンの編集契約を表す。
type ISceneDocument interface {
	IRestPoseSource
	// AppendAnimation はボーンのアニメーションを追加する。
	AppendAnimation(animation model.BoneAnimation) error
	// SetRecordedLength は全体の記録長を設定する。
	SetRecordedLength(seconds float64) error
	// Bytes は保存用のバイト列を返す。
	Bytes() ([]byte, error)
}

// ISceneRepository は変換先シーンの読み書き契約を表す。
type ISceneRepository interface {
	// Load はシーンを読み込む。
	Load(path string, atomName string) (ISceneDocument, error)
	// Save はシーンを保存する。
	Save(path string, document ISceneDocument) error
}

// ITimelineWriter は再構築タイムラインの書き出し契約を表す。
type ITimelineWriter interface {
	// Write はタイムラインを書き出す。
	Write(path string, timeline *model.Timeline) error
}

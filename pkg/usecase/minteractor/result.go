// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
)

// ConvertProgressEventType は変換処理の進捗イベント種別を表す。
type ConvertProgressEventType string

const (
	// ConvertProgressEventTypeInputValidated は入力検証完了イベントを表す。
	ConvertProgressEventTypeInputValidated ConvertProgressEventType = "input_validated"
	// ConvertProgressEventTypeMotionLoaded はモーション読込完了イベントを表す。
	ConvertProgressEventTypeMotionLoaded ConvertProgressEventType = "motion_loaded"
	// ConvertProgressEventTypeVariantSelected は脚構成選択完了イベントを表す。
	ConvertProgressEventTypeVariantSelected ConvertProgressEventType = "variant_selected"
	// ConvertProgressEventTypeReconstructed は状態再構築完了イベントを表す。
	ConvertProgressEventTypeReconstructed ConvertProgressEventType = "reconstructed"
	// ConvertProgressEventTypeTimelineWritten はタイムライン書き出し完了イベントを表す。
	ConvertProgressEventTypeTimelineWritten ConvertProgressEventType = "timeline_written"
	// ConvertProgressEventTypeSceneLoaded はシーン読込完了イベントを表す。
	ConvertProgressEventTypeSceneLoaded ConvertProgressEventType = "scene_loaded"
	// ConvertProgressEventTypeRetargeted はリターゲット完了イベントを表す。
	ConvertProgressEventTypeRetargeted ConvertProgressEventType = "retargeted"
	// ConvertProgressEventTypeSaved はシーン保存完了イベントを表す。
	ConvertProgressEventTypeSaved ConvertProgressEventType = "saved"
)

// ConvertProgressEvent は変換処理の進捗イベントを表す。
type ConvertProgressEvent struct {
	Type      ConvertProgressEventType
	BoneCount int
	StepCount int
}

// IConvertProgressReporter は変換処理の進捗通知契約を表す。
type IConvertProgressReporter interface {
	// ReportConvertProgress は変換処理進捗を通知する。
	ReportConvertProgress(event ConvertProgressEvent)
}

// ConvertRequest はVMD変換要求を表す。
type ConvertRequest struct {
	MotionPath   string
	ScenePath    string
	OutputPath   string
	AtomName     string
	TimelinePath string
	// Profile が nil の場合は既定プロファイルを使う。
	Profile          *rig.Profile
	Options          RetargetOptions
	Motion           *model.Motion
	ProgressReporter IConvertProgressReporter
}

// ConvertResult はVMD変換結果を表す。
type ConvertResult struct {
	RunID          string
	OutputPath     string
	Variant        rig.Variant
	BoneCount      int
	StepCount      int
	RecordedLength float64
	// Warnings は警告IDごとの件数。
	Warnings map[string]int
}

// InspectBone はモーション内ボーンの概要を表す。
type InspectBone struct {
	Label       string
	Destination string
	Mapped      bool
	Keyframes   int
	FirstFrame  uint32
	LastFrame   uint32
}

// InspectResult はモーション概要を表す。
type InspectResult struct {
	ModelName string
	Variant   rig.Variant
	Keyframes int
	Bones     []InspectBone
}

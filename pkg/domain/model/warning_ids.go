// 指示: miu200521358
package model

const (
	// WarningUnknownBone は変換先対応のないボーン名警告。
	WarningUnknownBone = "Vmd2VamWarningUnknownBone"
	// WarningMissingDependency は親ボーンの状態が見つからない警告。
	WarningMissingDependency = "Vmd2VamWarningMissingDependency"
	// WarningEmptyTrack はキーフレームを持たないボーン警告。
	WarningEmptyTrack = "Vmd2VamWarningEmptyTrack"
	// WarningDuplicateFrame は同一フレームのキーフレーム重複警告。
	WarningDuplicateFrame = "Vmd2VamWarningDuplicateFrame"
)

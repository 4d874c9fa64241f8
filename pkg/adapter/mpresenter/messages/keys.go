// 指示: miu200521358
// Package messages はCLI表示に使うメッセージを提供する。
package messages

// メッセージ一覧。
const (
	CommandRootShort    = "MMDモーション(VMD)をVaMシーンへ変換する"
	CommandConvertShort = "VMDモーションをVaMシーンのアニメーションへ変換する"
	CommandInspectShort = "VMDモーションのボーン構成を表示する"
	CommandWatchShort   = "VMDモーションの更新を監視して再変換する"

	FlagVmdUsage      = "入力VMDファイルパス"
	FlagSceneUsage    = "入力VaMシーンJSONパス"
	FlagOutUsage      = "出力シーンJSONパス(省略時は <シーン名>_<モーション名>.json)"
	FlagConfigUsage   = "設定YAMLファイルパス"
	FlagEnvFileUsage  = "MU_VMD2VAM_ 変数を記述した .env ファイルパス"
	FlagProfileUsage  = "ボーン対応プロファイルTOMLパス"
	FlagMetricsUsage  = "メトリクス出力先(Prometheusテキスト形式)"
	FlagTimelineUsage = "再構築タイムライン出力先(Arrow IPC形式)"
	FlagAtomUsage     = "アニメーション挿入先アトム名"
	FlagLogLevelUsage = "ログレベル(debug, info, warn, error)"
	FlagNoHeelsUsage  = "ヒール補正を無効にする"
	FlagPositionUsage = "位置の換算倍率"
	FlagTimePadUsage  = "開始余白秒"
	FlagFPSUsage      = "フレームレート"

	MessageVmdRequired   = "VMDファイルを指定してください (--vmd)"
	MessageSceneRequired = "シーンJSONファイルを指定してください (--scene)"

	LogConvertStart    = "[mu_vmd2vam] 変換開始: vmd=%s scene=%s\n"
	LogConvertSuccess  = "[mu_vmd2vam] 変換完了: out=%s variant=%s bones=%d steps=%d length=%s\n"
	LogConvertWarning  = "[mu_vmd2vam] 警告: %s=%d\n"
	LogMetricsWritten  = "[mu_vmd2vam] メトリクス出力: %s\n"
	LogWatchStart      = "[mu_vmd2vam] 監視開始: %s\n"
	LogInspectHeader   = "model=%s variant=%s keyframes=%d\n"
	LogInspectBone     = "%-20s %-10s keyframes=%-6d frames=%d-%d\n"
	LogInspectUnmapped = "(未対応)"
)

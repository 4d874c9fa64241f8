// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_motion/vmd"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_scene/vam"
	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode = 0o755
)

// targetMotionPaths は常に変換対象とするモーション。コマンドライン引数の後に処理する。
var targetMotionPaths = []string{
	// "E:/MMD/vmd/ダンス/ヒバナ.vmd",
}

// batchConfig はバッチ変換の実行設定を表す。
type batchConfig struct {
	ScenePath  string
	OutputRoot string
	DryRun     bool
	FailFast   bool
	Motions    []string
}

// conversionEntry は1モーション分の変換入力情報を表す。
type conversionEntry struct {
	Index      int
	SourcePath string
	MotionName string
	CaseDir    string
	OutputPath string
}

// conversionResult は1モーション分の変換結果を表す。
type conversionResult struct {
	Entry     conversionEntry
	Status    string
	Duration  time.Duration
	Err       error
	StageInfo string
}

// convertProgressCollector は Convert の進捗イベントを収集する。
type convertProgressCollector struct {
	eventCounts map[minteractor.ConvertProgressEventType]int
	boneMax     int
	stepMax     int
}

// main は固定シーンへのVMD一括変換を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括変換を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildConversionEntries(config.OutputRoot, config.ScenePath, config.Motions)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "変換対象モーションがありません")
		return 2
	}

	results := executeBatchConversion(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	scenePath := flag.String("scene", "", "変換先のVaMシーンJSON")
	outputRoot := flag.String("output-root", defaultOutputRoot, "変換結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実変換せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedScenePath := strings.TrimSpace(*scenePath)
	if trimmedScenePath == "" {
		return batchConfig{}, errors.New("scene が空です")
	}
	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	motions := append(flag.Args(), targetMotionPaths...)
	return batchConfig{
		ScenePath:  normalizeInputPath(trimmedScenePath),
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
		Motions:    motions,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// buildConversionEntries は入力パス一覧から変換対象エントリを生成する。
func buildConversionEntries(outputRoot string, scenePath string, motionPaths []string) []conversionEntry {
	sceneName := sanitizePathComponent(resolveBaseName(scenePath))
	entries := make([]conversionEntry, 0, len(motionPaths))
	for i, rawPath := range motionPaths {
		motionName := resolveBaseName(rawPath)
		safeMotionName := sanitizePathComponent(motionName)
		caseDir := filepath.Join(outputRoot, fmt.Sprintf("%03d_%s", i+1, safeMotionName))
		entries = append(entries, conversionEntry{
			Index:      i + 1,
			SourcePath: normalizeInputPath(rawPath),
			MotionName: motionName,
			CaseDir:    caseDir,
			OutputPath: filepath.Join(caseDir, sceneName+"_"+safeMotionName+".json"),
		})
	}
	return entries
}

// executeBatchConversion は全モーションの変換処理を順次実行する。
func executeBatchConversion(config batchConfig, entries []conversionEntry) []conversionResult {
	results := make([]conversionResult, 0, len(entries))
	usecase := minteractor.NewVmd2VamUsecase(minteractor.Vmd2VamUsecaseDeps{
		MotionReader:    vmd.NewVmdRepository(),
		SceneRepository: vam.NewSceneRepository(vam.DefaultIndent),
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 変換開始: motion=%s\n", entry.Index, total, entry.MotionName)
		result := convertMotionEntry(usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 変換成功: motion=%s output=%s elapsed=%s\n", entry.Index, total, entry.MotionName, entry.OutputPath, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.StageInfo) != "" {
				fmt.Printf("[%d/%d] Convert進捗: %s\n", entry.Index, total, result.StageInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: motion=%s input=%s output=%s\n", entry.Index, total, entry.MotionName, entry.SourcePath, entry.OutputPath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: motion=%s input=%s reason=%v\n", entry.Index, total, entry.MotionName, entry.SourcePath, result.Err)
		default:
			fmt.Printf("[%d/%d] 変換失敗: motion=%s reason=%v\n", entry.Index, total, entry.MotionName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// convertMotionEntry は1モーション分の変換を実行する。
func convertMotionEntry(usecase *minteractor.Vmd2VamUsecase, config batchConfig, entry conversionEntry) conversionResult {
	result := conversionResult{
		Entry:  entry,
		Status: "failed",
	}
	for _, path := range []string{entry.SourcePath, config.ScenePath} {
		if _, err := os.Stat(path); err != nil {
			result.Status = "skipped_missing"
			result.Err = err
			return result
		}
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	progressCollector := newConvertProgressCollector()
	if _, err := usecase.Convert(context.Background(), minteractor.ConvertRequest{
		MotionPath:       entry.SourcePath,
		ScenePath:        config.ScenePath,
		OutputPath:       entry.OutputPath,
		ProgressReporter: progressCollector,
	}); err != nil {
		result.Err = fmt.Errorf("Convertに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.StageInfo = progressCollector.Summary()
	return result
}

// printBatchSummary は変換結果の集計を標準出力へ表示する。
func printBatchSummary(results []conversionResult) {
	succeeded := 0
	failed := 0
	skipped := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		case "skipped_missing":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ変換サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		skipped,
		dryRun,
	)
}

// resolveBaseName は入力パスから拡張子を除いた名前を返す。
func resolveBaseName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" || name == "." {
		return "motion"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(trimmed))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	trimmed := strings.TrimSpace(path)
	if runtime.GOOS != "linux" {
		return trimmed
	}
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return trimmed
	}
	drive := strings.ToLower(trimmed[:1])
	rest := strings.ReplaceAll(trimmed[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ/ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "motion"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "motion"
	}
	return replaced
}

// newConvertProgressCollector は Convert 進捗収集器を生成する。
func newConvertProgressCollector() *convertProgressCollector {
	return &convertProgressCollector{
		eventCounts: map[minteractor.ConvertProgressEventType]int{},
	}
}

// ReportConvertProgress は Convert の進捗イベントを収集する。
func (collector *convertProgressCollector) ReportConvertProgress(event minteractor.ConvertProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[minteractor.ConvertProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	collector.boneMax = max(collector.boneMax, event.BoneCount)
	collector.stepMax = max(collector.stepMax, event.StepCount)
}

// Summary は収集した Convert 進捗の要約文字列を返す。
func (collector *convertProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d bones=%d steps=%d stages=%s",
		len(collector.eventCounts),
		collector.boneMax,
		collector.stepMax,
		strings.Join(types, ","),
	)
}

// 指示: miu200521358
package minteractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	sceneOutputExt    = ".json"
	outputDirFileMode = 0o755
)

// BuildDefaultOutputPath はシーンとモーションの名前から既定の保存先を生成する。
// 保存先は入力シーンと同じディレクトリの "<シーン名>_<モーション名>.json"。
func BuildDefaultOutputPath(motionPath string, scenePath string) string {
	motionBase := strings.TrimSpace(strings.TrimSuffix(filepath.Base(motionPath), filepath.Ext(motionPath)))
	sceneBase := strings.TrimSpace(strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath)))
	if motionBase == "" || motionBase == "." || sceneBase == "" || sceneBase == "." {
		return ""
	}
	return filepath.Join(filepath.Dir(scenePath), sceneBase+"_"+motionBase+sceneOutputExt)
}

// resolveSceneOutputPath はシーン保存先パスを解決し、拡張子を検証する。
func resolveSceneOutputPath(motionPath string, scenePath string, outputPath string) (string, error) {
	if strings.TrimSpace(motionPath) == "" {
		return "", fmt.Errorf("入力VMDパスが未指定です")
	}
	if strings.TrimSpace(scenePath) == "" {
		return "", fmt.Errorf("入力シーンパスが未指定です")
	}
	resolved := strings.TrimSpace(outputPath)
	if resolved == "" {
		resolved = BuildDefaultOutputPath(motionPath, scenePath)
	}
	if resolved == "" {
		return "", fmt.Errorf("保存先シーンパスが未指定です")
	}
	if !strings.EqualFold(filepath.Ext(resolved), sceneOutputExt) {
		return "", fmt.Errorf("保存先拡張子が .json ではありません: %s", resolved)
	}
	if filepath.Clean(resolved) == filepath.Clean(scenePath) {
		return "", fmt.Errorf("保存先が入力シーンと同じです: %s", resolved)
	}
	return resolved, nil
}

// prepareOutputDir は保存先ディレクトリを作成する。
func prepareOutputDir(outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if outputDir == "" {
		return fmt.Errorf("保存先ディレクトリの解決に失敗しました")
	}
	if err := os.MkdirAll(outputDir, outputDirFileMode); err != nil {
		return fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}

// 指示: miu200521358
package vam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/port/moutput"
)

// SceneRepository はVaMシーンJSONの読み書きを表す。
type SceneRepository struct {
	indent string
}

// NewSceneRepository はSceneRepositoryを生成する。indent が空の場合は既定値を使う。
func NewSceneRepository(indent string) *SceneRepository {
	if indent == "" {
		indent = DefaultIndent
	}
	return &SceneRepository{indent: indent}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load はシーンJSONを読み込む。
func (r *SceneRepository) Load(path string, atomName string) (moutput.ISceneDocument, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("シーンファイルの拡張子が .json ではありません: %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("シーンファイルが見つかりません: %s: %w", path, err)
		}
		return nil, fmt.Errorf("シーンファイルの読み取りに失敗しました: %w", err)
	}
	doc, err := NewSceneDocument(raw, atomName)
	if err != nil {
		return nil, err
	}
	doc.SetIndent(r.indent)
	logSceneInfo("シーン読込完了: file=%s atom=%s bytes=%d", filepath.Base(path), atomName, len(raw))
	return doc, nil
}

// Save はシーンJSONを一時ファイルへ書き込んでから置き換える。
func (r *SceneRepository) Save(path string, document moutput.ISceneDocument) error {
	if document == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	data, err := document.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, ".vmd2vam-*.json")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗しました: %w", err)
	}
	tempPath := temp.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}
	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		cleanup()
		return fmt.Errorf("シーンの書き込みに失敗しました: %w", err)
	}
	if err := temp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("シーンの書き込みに失敗しました: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("シーンの保存に失敗しました: %w", err)
	}
	logSceneInfo("シーン保存完了: file=%s bytes=%d", filepath.Base(path), len(data))
	return nil
}

// logSceneInfo はシーン入出力の情報ログを出力する。
func logSceneInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

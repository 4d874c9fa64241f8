// 指示: miu200521358
package vmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
)

// VmdRepository はVMDモーションの読み書きを表す。
type VmdRepository struct {
	translate model.NameTranslator
}

// NewVmdRepository はVmdRepositoryを生成する。
func NewVmdRepository() *VmdRepository {
	return &VmdRepository{translate: model.TranslateBoneName}
}

// SetNameTranslator はボーン名置換関数を設定する。nil の場合は既定の置換規則に戻す。
func (r *VmdRepository) SetNameTranslator(translate model.NameTranslator) {
	if r == nil {
		return
	}
	if translate == nil {
		translate = model.TranslateBoneName
	}
	r.translate = translate
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *VmdRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".vmd")
}

// Load はVMDを読み込む。
func (r *VmdRepository) Load(path string) (*model.Motion, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("VMDファイルの拡張子ではありません: %s", path)
	}
	logVmdInfo("VMD読込開始: file=%s", filepath.Base(path))

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("VMDファイルが見つかりません: %s: %w", path, err)
		}
		return nil, fmt.Errorf("VMDファイルの読み取りに失敗しました: %w", err)
	}
	defer file.Close()

	motion, err := Decode(file, r.translate)
	if err != nil {
		return nil, err
	}
	logVmdInfo(
		"VMD読込完了: model=%s bones=%d keyframes=%d",
		motion.ModelName,
		len(motion.BoneTracks.Names()),
		motion.BoneTracks.Len(),
	)
	return motion, nil
}

// Save はVMDを保存する。
func (r *VmdRepository) Save(path string, motion *model.Motion) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("VMDファイルの作成に失敗しました: %w", err)
	}
	if err := Encode(file, motion); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("VMDファイルのクローズに失敗しました: %w", err)
	}
	logVmdInfo("VMD保存完了: file=%s", filepath.Base(path))
	return nil
}

// logVmdInfo はVMD入出力の情報ログを出力する。
func logVmdInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logVmdDebug はVMD入出力のデバッグログを出力する。
func logVmdDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logVmdWarn はVMD入出力の警告ログを出力する。
func logVmdWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

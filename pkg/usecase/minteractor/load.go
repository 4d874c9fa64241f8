// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
)

// nameTranslatorSetter はボーン名置換関数を差し替え可能な読み込み先を表す。
type nameTranslatorSetter interface {
	SetNameTranslator(translate model.NameTranslator)
}

// LoadMotion はVMDモーションを読み込む。
// profile が指定された場合は、その置換規則を読み込み先へ反映する。
func (uc *Vmd2VamUsecase) LoadMotion(path string, profile *rig.Profile) (*model.Motion, error) {
	if uc.motionReader == nil {
		return nil, fmt.Errorf("モーション読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("入力VMDパスが未指定です")
	}
	if !uc.motionReader.CanLoad(path) {
		return nil, fmt.Errorf("入力ファイルの拡張子が .vmd ではありません: %s", path)
	}
	if setter, ok := uc.motionReader.(nameTranslatorSetter); ok && profile != nil {
		setter.SetNameTranslator(profile.Translator())
	}
	motion, err := uc.motionReader.Load(path)
	if err != nil {
		return nil, err
	}
	if motion == nil {
		return nil, fmt.Errorf("モーション読み込み結果が空です")
	}
	return motion, nil
}

// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/port/moutput"
)

// LoadScene は変換先シーンを読み込む。
func (uc *Vmd2VamUsecase) LoadScene(path string, atomName string) (moutput.ISceneDocument, error) {
	if uc.sceneRepository == nil {
		return nil, fmt.Errorf("シーンリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("入力シーンパスが未指定です")
	}
	return uc.sceneRepository.Load(path, atomName)
}

// SaveScene は変換先シーンを保存する。
func (uc *Vmd2VamUsecase) SaveScene(path string, document moutput.ISceneDocument) error {
	if uc.sceneRepository == nil {
		return fmt.Errorf("シーンリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if document == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	if err := prepareOutputDir(path); err != nil {
		return err
	}
	return uc.sceneRepository.Save(path, document)
}

// 指示: miu200521358
// Package io_profile はボーン対応の上書き設定をTOMLから読み込む。
package io_profile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
	"github.com/pelletier/go-toml/v2"
)

// profileFile はTOMLファイルの構造。
type profileFile struct {
	Bones        map[string]string `toml:"bones"`
	Dependencies map[string]string `toml:"dependencies"`
	Names        []model.NameRule  `toml:"names"`
}

// Parse はTOMLを解析し、既定プロファイルへ上書きしたプロファイルを返す。
func Parse(data []byte) (rig.Profile, error) {
	var parsed profileFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&parsed); err != nil {
		return rig.Profile{}, fmt.Errorf("プロファイルの解析に失敗しました: %w", err)
	}
	for i, rule := range parsed.Names {
		if rule.From == "" {
			return rig.Profile{}, fmt.Errorf("プロファイルの置換規則[%d]の from が空です", i)
		}
	}
	for label, bone := range parsed.Bones {
		if strings.TrimSpace(bone) == "" {
			return rig.Profile{}, fmt.Errorf("プロファイルのボーン対応が空です: %s", label)
		}
	}
	return rig.DefaultProfile().Merge(rig.Profile{
		Bones:        parsed.Bones,
		Dependencies: parsed.Dependencies,
		NameRules:    parsed.Names,
	})
}

// Load はTOMLファイルを読み込む。path が空の場合は既定プロファイルを返す。
func Load(path string) (rig.Profile, error) {
	if strings.TrimSpace(path) == "" {
		return rig.DefaultProfile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rig.Profile{}, fmt.Errorf("プロファイルの読み取りに失敗しました: %w", err)
	}
	return Parse(data)
}

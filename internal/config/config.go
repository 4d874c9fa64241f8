// 指示: miu200521358
// Package config は変換処理の設定を扱う。
package config

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/Knetic/govaluate.v3"
)

// Config は変換処理の設定を表す。
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// FPS はMMDフレームを秒へ換算するフレームレート。
	FPS float64 `koanf:"fps"`
	// TimePadSeconds は物理演算が落ち着くまでの開始余白秒。
	TimePadSeconds float64 `koanf:"time_pad_seconds"`
	// PositionFactor はMMD単位からVaM単位への倍率。
	PositionFactor float64 `koanf:"position_factor"`
	// ArmRotation は腕ロール補正角の式(ラジアン)。
	ArmRotation string `koanf:"arm_rotation"`
	// HeelRotation はヒール補正角の式(ラジアン)。
	HeelRotation       string  `koanf:"heel_rotation"`
	Heels              bool    `koanf:"heels"`
	CenterHeightOffset float64 `koanf:"center_height_offset"`
	CenterZOffset      float64 `koanf:"center_z_offset"`

	AtomName     string `koanf:"atom_name"`
	ProfilePath  string `koanf:"profile_path"`
	MetricsPath  string `koanf:"metrics_path"`
	TimelinePath string `koanf:"timeline_path"`
	OutputIndent string `koanf:"output_indent"`
}

// New は既定値のConfigを生成する。
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "console",
		FPS:                30.0,
		TimePadSeconds:     1.0,
		PositionFactor:     0.08,
		ArmRotation:        "0.8",
		HeelRotation:       "3.14/3",
		Heels:              true,
		CenterHeightOffset: -0.05,
		CenterZOffset:      0.0,
		AtomName:           "Person",
		OutputIndent:       "   ",
	}
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive: %v", ErrInvalidConfig, c.FPS)
	}
	if c.TimePadSeconds < 0 {
		return fmt.Errorf("%w: time_pad_seconds must not be negative: %v", ErrInvalidConfig, c.TimePadSeconds)
	}
	if strings.TrimSpace(c.AtomName) == "" {
		return fmt.Errorf("%w: atom_name must not be empty", ErrInvalidConfig)
	}
	if _, _, err := c.Angles(); err != nil {
		return err
	}
	return nil
}

// Angles は腕ロール補正角とヒール補正角を評価して返す。
func (c *Config) Angles() (float64, float64, error) {
	arm, err := EvaluateAngle(c.ArmRotation)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: arm_rotation: %v", ErrInvalidConfig, err)
	}
	heel, err := EvaluateAngle(c.HeelRotation)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: heel_rotation: %v", ErrInvalidConfig, err)
	}
	return arm, heel, nil
}

// EvaluateAngle は角度の式を評価する。式中では pi を使える。
func EvaluateAngle(expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, fmt.Errorf("角度の式が空です")
	}
	evaluable, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return 0, fmt.Errorf("角度の式を解析できません: %s: %w", expression, err)
	}
	result, err := evaluable.Evaluate(map[string]interface{}{"pi": math.Pi})
	if err != nil {
		return 0, fmt.Errorf("角度の式を評価できません: %s: %w", expression, err)
	}
	value, ok := result.(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("角度の式の結果が数値ではありません: %s", expression)
	}
	return value, nil
}

// 指示: miu200521358
package config

import "errors"

// 設定処理のエラー種別。errors.Is で判定する。
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// 指示: miu200521358
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix は環境変数の接頭辞。
	EnvPrefix = "MU_VMD2VAM_"
	// EnvConfigPath は設定ファイルパスを指定する環境変数。
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// Sources は設定の読込元を表す。
type Sources struct {
	// ConfigPath が空の場合は MU_VMD2VAM_CONFIG を参照する。
	ConfigPath string
	// EnvFile は MU_VMD2VAM_ 変数を記述した .env ファイル。
	EnvFile string
	// Overrides はCLIフラグ等の最優先の値。キーは koanf タグ名。
	Overrides map[string]any
}

// Load は既定値、YAMLファイル、.envファイル、環境変数、上書き値の順に重ねてConfigを生成する。
func Load(ctx context.Context, sources Sources) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := koanf.New(".")

	path := strings.TrimSpace(sources.ConfigPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	if envFile := strings.TrimSpace(sources.EnvFile); envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, envFile, err)
		}
		for name, value := range values {
			key, ok := envKey(name)
			if !ok {
				continue
			}
			if err := k.Set(key, value); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, name, err)
			}
		}
	}

	// MU_VMD2VAM_TIME_PAD_SECONDS -> time_pad_seconds
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		key, _ := envKey(s)
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	for key, value := range sources.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("%w: override %s: %v", ErrLoadConfig, key, err)
		}
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey は環境変数名を設定キーへ変換する。接頭辞が無い場合はfalse。
func envKey(name string) (string, bool) {
	if !strings.HasPrefix(name, EnvPrefix) {
		return "", false
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), true
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Downloads DownloadsConfig `koanf:"downloads"`
	Engine    EngineConfig    `koanf:"engine"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type DownloadsConfig struct {
	Dir string `koanf:"dir"`
}

type EngineConfig struct {
	Binary       string `koanf:"binary"`
	CookieFile   string `koanf:"cookie_file"`
	AudioFormat  string `koanf:"audio_format"`
	AudioQuality string `koanf:"audio_quality"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Load reads config from TOML file (if provided) then overlays env vars.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	// 2. Load TOML config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load env vars: ML_SERVER_PORT -> server.port
	// Only set env vars that have non-empty values to avoid overriding TOML config.
	if err := k.Load(env.ProviderWithValue("ML_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		mapped := strings.Replace(
			strings.ToLower(strings.TrimPrefix(key, "ML_")),
			"_", ".", -1,
		)
		return mapped, value
	}), nil); err != nil {
		return nil, err
	}

	// 4. Handle multi-word convenience env vars the underscore mapping mangles
	for envKey, confKey := range map[string]string{
		"ML_ENGINE_COOKIE_FILE":   "engine.cookie_file",
		"ML_ENGINE_AUDIO_FORMAT":  "engine.audio_format",
		"ML_ENGINE_AUDIO_QUALITY": "engine.audio_quality",
	} {
		if v := os.Getenv(envKey); v != "" {
			k.Set(confKey, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(cfg.Downloads.Dir); err == nil {
		cfg.Downloads.Dir = abs
	}

	return &cfg, nil
}

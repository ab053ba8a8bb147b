package config

import (
	"github.com/knadh/koanf/v2"
)

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"server.host": "0.0.0.0",
		"server.port": 8080,

		"downloads.dir": "downloads",

		"engine.binary":        "yt-dlp",
		"engine.cookie_file":   "",
		"engine.audio_format":  "mp3",
		"engine.audio_quality": "192K",

		"logging.level": "info",
	}

	for key, val := range defaults {
		k.Set(key, val)
	}
	return nil
}

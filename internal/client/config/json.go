package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/socialbattery/internal/flagx"
	"github.com/dmitrijs2005/socialbattery/internal/timex"
)

// JsonConfig is the JSON-file shape of Config, with timex.Duration standing
// in for time.Duration so intervals can be written as "10s".
type JsonConfig struct {
	DataDir        string         `json:"data_dir"`
	SessionBackend string         `json:"session_backend"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
	GeminiAPIKey   string         `json:"gemini_api_key"`
	GeminiModel    string         `json:"gemini_model"`
	NotifyDelay    timex.Duration `json:"notify_delay"`
}

// parseJson overlays values from the JSON file named by -c/-config onto the
// provided Config. Empty fields in the file leave the current values alone.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&cfg.DataDir, c.DataDir)
	overlay(&cfg.SessionBackend, c.SessionBackend)
	overlay(&cfg.RedisAddr, c.RedisAddr)
	overlay(&cfg.RedisPassword, c.RedisPassword)
	overlay(&cfg.GeminiAPIKey, c.GeminiAPIKey)
	overlay(&cfg.GeminiModel, c.GeminiModel)

	if c.NotifyDelay.Duration != 0 {
		cfg.NotifyDelay = time.Duration(c.NotifyDelay.Duration)
	}
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

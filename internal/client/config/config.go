package config

import (
	"os"
	"time"
)

// Session backend selectors.
const (
	SessionFile   = "file"
	SessionSqlite = "sqlite"
	SessionRedis  = "redis"
)

// Config holds runtime settings for the Social Battery CLI.
//
// Fields:
//   - DataDir: directory for the record blob and local session state.
//   - SessionBackend: where the current-session pointer lives.
//   - RedisAddr / RedisPassword: redis connection when SessionBackend is "redis".
//   - GeminiAPIKey / GeminiModel: oracle access.
//   - NotifyDelay: how long after a calendar sync the scheduled scare fires.
type Config struct {
	DataDir        string
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	GeminiAPIKey   string
	GeminiModel    string
	NotifyDelay    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "./data"
	c.SessionBackend = SessionFile
	c.RedisAddr = "127.0.0.1:6379"
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.GeminiModel = "gemini-3-flash-preview"
	c.NotifyDelay = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/socialbattery/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-dir", "-sess", "-r", "-k", "-m", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.SessionBackend, "sess", cfg.SessionBackend, "session backend (file|sqlite|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "m", cfg.GeminiModel, "Gemini model")

	notifyDelay := fs.Int("n", int(cfg.NotifyDelay.Seconds()), "calendar notification delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.NotifyDelay = time.Duration(*notifyDelay) * time.Second
}

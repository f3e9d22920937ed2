// Package config loads runtime configuration for the Social Battery CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-dir string   data directory for local state
//	-sess string  session backend: file|sqlite|redis
//	-r string     redis address (session backend "redis")
//	-k string     Gemini API key (falls back to $GEMINI_API_KEY)
//	-m string     Gemini model name
//	-n int        calendar notification delay (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "data_dir": "./data",
//	  "session_backend": "file",
//	  "notify_delay": "10s"
//	}
package config

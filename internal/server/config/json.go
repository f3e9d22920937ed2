package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/socialbattery/internal/flagx"
	"github.com/dmitrijs2005/socialbattery/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. It uses timex.Duration for
// interval fields, which allows parsing both string values such as "1h" and
// integer nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	CORSOrigin                  string         `json:"cors_origin"`
	StoreBackend                string         `json:"store_backend"`
	DataDir                     string         `json:"data_dir"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	GeminiAPIKey                string         `json:"gemini_api_key"`
	GeminiModel                 string         `json:"gemini_model"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Empty JSON fields leave the
// current (default) values alone, so a partial overlay file is fine.
// An unreadable or invalid file panics: a config file that exists but does
// not parse is an operator error, not a condition to run through.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.CORSOrigin, c.CORSOrigin)
	overlay(&config.StoreBackend, c.StoreBackend)
	overlay(&config.DataDir, c.DataDir)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.GeminiAPIKey, c.GeminiAPIKey)
	overlay(&config.GeminiModel, c.GeminiModel)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

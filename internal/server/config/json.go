package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/daybook/internal/flagx"
	"github.com/dmitrijs2005/daybook/internal/timex"
)

// JsonConfig is the on-disk layout of the server config file. Durations
// accept both "15m" strings and integer nanoseconds. Absent keys keep the
// value from the previous layer.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	S3UsePathStyle   *bool           `json:"s3_use_path_style"`
	ImageBucket      *string         `json:"image_bucket"`
	VideoBucket      *string         `json:"video_bucket"`
	PromptsFile      *string         `json:"prompts_file"`
	PresignExpiry    *timex.Duration `json:"presign_expiry"`
	MaxDay           *int            `json:"max_day"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config (or DAYBOOK_CONFIG) into cfg.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(EnvPrefix + "_CONFIG")
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

	c.apply(cfg)
}

func (c *JsonConfig) apply(cfg *Config) {
	set(&cfg.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&cfg.DatabaseDSN, c.DatabaseDSN)
	set(&cfg.SecretKey, c.SecretKey)
	set(&cfg.S3RootUser, c.S3RootUser)
	set(&cfg.S3RootPassword, c.S3RootPassword)
	set(&cfg.S3Region, c.S3Region)
	set(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&cfg.S3UsePathStyle, c.S3UsePathStyle)
	set(&cfg.ImageBucket, c.ImageBucket)
	set(&cfg.VideoBucket, c.VideoBucket)
	set(&cfg.PromptsFile, c.PromptsFile)
	set(&cfg.MaxDay, c.MaxDay)
	set(&cfg.LogLevel, c.LogLevel)
	if c.PresignExpiry != nil {
		cfg.PresignExpiry = c.PresignExpiry.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

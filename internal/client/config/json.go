package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/daybook/internal/flagx"
	"github.com/dmitrijs2005/daybook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the request timeout
// either as a string like "15s" or as integer nanoseconds. Absent keys
// keep the value from the previous layer.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	ServiceURL         *string         `json:"service_url"`
	AccessKey          *string         `json:"access_key"`
	ImageBucket        *string         `json:"image_bucket"`
	VideoBucket        *string         `json:"video_bucket"`
	DiaryID            *string         `json:"diary_id"`
	MaxDay             *int            `json:"max_day"`
	PromptsSource      *string         `json:"prompts"`
	DefaultTitle       *string         `json:"default_title"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	MaxImageBytes      *int64          `json:"max_image_bytes"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// -c/-config (or DAYBOOK_CONFIG). Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(EnvPrefix + "_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	set(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	set(&cfg.ServiceURL, jc.ServiceURL)
	set(&cfg.AccessKey, jc.AccessKey)
	set(&cfg.ImageBucket, jc.ImageBucket)
	set(&cfg.VideoBucket, jc.VideoBucket)
	set(&cfg.DiaryID, jc.DiaryID)
	set(&cfg.MaxDay, jc.MaxDay)
	set(&cfg.PromptsSource, jc.PromptsSource)
	set(&cfg.DefaultTitle, jc.DefaultTitle)
	set(&cfg.MaxImageBytes, jc.MaxImageBytes)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

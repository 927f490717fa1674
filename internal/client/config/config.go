package config

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
)

// Config holds runtime settings for the daybook CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the daybookd gRPC endpoint.
//   - ServiceURL: base URL of the daybookd HTTP surface; public object URLs
//     and the default prompts location derive from it.
//   - AccessKey: access key sent with every request. Deleting entries
//     needs a service key.
//   - ImageBucket / VideoBucket: storage buckets for entry images and videos.
//   - DiaryID: diary namespace all entries are scoped to.
//   - MaxDay: last day of the prompt sequence.
//   - PromptsSource: URL or file path of the prompt table; empty means
//     <ServiceURL>/prompts.json.
//   - DefaultTitle: title used when the form leaves it blank.
//   - RequestTimeout: per-operation deadline.
//   - MaxImageBytes: largest image accepted by "add".
type Config struct {
	ServerEndpointAddr string        `envconfig:"GRPC_ADDR"`
	ServiceURL         string        `envconfig:"SERVICE_URL"`
	AccessKey          string        `envconfig:"ACCESS_KEY"`
	ImageBucket        string        `envconfig:"IMAGE_BUCKET"`
	VideoBucket        string        `envconfig:"VIDEO_BUCKET"`
	DiaryID            string        `envconfig:"DIARY"`
	MaxDay             int           `envconfig:"MAX_DAY"`
	PromptsSource      string        `envconfig:"PROMPTS"`
	DefaultTitle       string        `envconfig:"DEFAULT_TITLE"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT"`
	MaxImageBytes      int64         `envconfig:"MAX_IMAGE_BYTES"`
	LogLevel           string        `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.ServiceURL = "http://127.0.0.1:8080"
	c.AccessKey = ""
	c.ImageBucket = common.DefaultImageBucket
	c.VideoBucket = common.DefaultVideoBucket
	c.DiaryID = common.DefaultDiaryID
	c.MaxDay = common.DefaultMaxDay
	c.PromptsSource = ""
	c.DefaultTitle = "Entry"
	c.RequestTimeout = 15 * time.Second
	c.MaxImageBytes = 10 << 20
	c.LogLevel = "warn"
}

// PromptsLocation resolves where the prompt table is loaded from.
func (c *Config) PromptsLocation() string {
	if c.PromptsSource != "" {
		return c.PromptsSource
	}
	return strings.TrimRight(c.ServiceURL, "/") + common.PromptsPath
}

func (c *Config) normalize() {
	if c.ImageBucket == "" {
		c.ImageBucket = common.DefaultImageBucket
	}
	if c.VideoBucket == "" {
		c.VideoBucket = common.DefaultVideoBucket
	}
	if c.DiaryID == "" {
		c.DiaryID = common.DefaultDiaryID
	}
	if c.MaxDay < 1 {
		c.MaxDay = common.DefaultMaxDay
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.normalize()
	return cfg
}

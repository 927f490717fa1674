package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every variable name, e.g. DAYBOOK_DATABASE_DSN.
// The unprefixed tag (IMAGE_BUCKET, ...) is accepted as a fallback.
const EnvPrefix = "DAYBOOK"

// parseEnv overlays values present in the environment. Unset variables leave
// the current value untouched. Malformed values panic, like the other layers.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}

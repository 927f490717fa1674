package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to variable names, e.g. DAYBOOK_DIARY.
const EnvPrefix = "DAYBOOK"

func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}

package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with STOREFRONT_* environment variables.
// Unset variables leave the current value untouched. Malformed values
// (e.g. a TTL that is not a duration) panic, like the JSON and flag loaders.
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}

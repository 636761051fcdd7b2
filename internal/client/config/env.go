package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with STOREFRONT_CLIENT_* variables; unset ones are
// left alone and malformed ones panic.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

// Package config loads runtime configuration for the storefront terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $CONFIG_PATH.
//  3. STOREFRONT_CLIENT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the storefront API
//	-f string   path of the local SQLite session file
//	-t int      request timeout (seconds)
//	-l string   log level
//	-g string   gRPC health address of the backend (empty disables polling)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "storage_dsn": "storefront.db",
//	  "request_timeout": "10s",
//	  "log_level": "warn",
//	  "health_addr": "127.0.0.1:9090",
//	  "health_check_interval": "30s"
//	}
package config

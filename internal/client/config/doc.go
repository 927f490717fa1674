// Package config loads runtime configuration for the daybook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or DAYBOOK_CONFIG.
//  3. Environment variables with the DAYBOOK_ prefix (envconfig).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "service_url": "http://127.0.0.1:8080",
//	  "access_key": "<jwt>",
//	  "diary_id": "default-diary",
//	  "max_day": 151,
//	  "request_timeout": "15s"
//	}
//
// Blank bucket or diary names fall back to diary-images, diary-videos and
// default-diary.
package config

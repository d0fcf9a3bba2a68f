// Package config loads runtime configuration for the Voyage client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the backend API
//	-s string   S3-compatible storage endpoint
//	-d string   path to the local draft database
//	-l string   UI locale
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.voyage.example/v1",
//	  "request_timeout": "30s",
//	  "request_retries": 2,
//	  "storage_endpoint": "http://127.0.0.1:9000",
//	  "storage_access_key": "...",
//	  "storage_secret_key": "...",
//	  "private_bucket": "media",
//	  "public_bucket": "media-public",
//	  "progress_poll_interval": "500ms"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config

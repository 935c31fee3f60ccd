// Package config loads runtime configuration for the back-office CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   root URL of the commerce backend
//	-d string   path to the local credentials database
//	-t string   request timeout as a Go duration ("3s")
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "3s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:5000/",
//	  "database_path": "backoffice.db",
//	  "request_timeout": "3s"
//	}
package config

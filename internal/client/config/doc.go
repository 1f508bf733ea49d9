// Package config loads runtime configuration for the PitchPoa CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "90s",
//	  "report_dir": "reports",
//	  "log_level": "warn"
//	}
//
// The CLI does not read environment variables; the token lives only in
// memory for the length of a session.
package config

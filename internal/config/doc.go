// Package config handles configuration loading for workbench-server.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults. The JWT signing
// secret is the one setting with no default of any kind: startup fails when
// auth.jwt_secret is absent or shorter than MinSecretLength.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${WORKBENCH_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	auth:
//	  token_ttl: "24h"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database settings:
//
//	database:
//	  path: "./data/workbench.db"
//
// Auth settings:
//
//	auth:
//	  jwt_secret: "${WORKBENCH_JWT_SECRET}"  # required, >= 32 bytes
//	  token_ttl: "24h"                       # optional, default 24h
//
// Logging settings:
//
//	logging:
//	  level: "info"    # debug, info, warn, error
//	  format: "text"   # text or json
package config

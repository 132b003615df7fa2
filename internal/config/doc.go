// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Precedence, highest first: TASKAPI_* environment variables, the optional
// config file, built-in defaults.
package config

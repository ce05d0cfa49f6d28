// Package config holds the effective mediasort configuration: command-line
// options layered over an optional TOML file layered over defaults.
package config

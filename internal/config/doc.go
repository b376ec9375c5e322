// Package config loads taskman settings from defaults, an optional YAML file,
// TASKMAN_ environment variables and command-line flags, and validates the
// result before anything else is constructed.
package config

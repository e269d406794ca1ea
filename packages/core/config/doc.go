// Package config handles configuration loading and management for shapematch.
//
// It provides functionality for:
//   - Loading configuration from .shapematch.json or .shapematch.yaml files
//   - Default field conventions (_id, __v, createdAt, updatedAt)
//   - Merging project configuration with command line overrides
package config

// Package config loads piiredact configuration from local and global YAML
// files. CLI code layers flags over the local file over the global one.
package config

// Package engine decides whether a record is sensitive and produces its
// masked copy. Processor handles one record; ProcessAll fans a batch out
// over a worker pool. External consumers should use pkg/core.
package engine

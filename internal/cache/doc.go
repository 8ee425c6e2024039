// Package cache stores an incremental scan cache: for each input file, the
// fingerprint of its bytes and settings plus the output it produced, so an
// unchanged input is not processed again.
package cache

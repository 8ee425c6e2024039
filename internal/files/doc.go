// Package files holds small helpers for files piiredact maintains next to
// its inputs.
package files

// Package redact implements the masking rules for each identifier category
// and the application of masked spans inside a field value.
package redact

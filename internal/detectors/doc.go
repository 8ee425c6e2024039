// Package detectors holds the identifier definitions used to find personal
// data inside record fields, the registry that orders them and the field
// classifier that applies them.
package detectors

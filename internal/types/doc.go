// Package types holds the value types shared by the detectors, the engine and
// the collaborators around it.
package types

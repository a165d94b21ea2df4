// Package types defines the Frame, Strategy, and Graph types, the pose and
// offset math, the alignment state machine, and standard error types for
// the Anchorage spatial alignment system.
package types

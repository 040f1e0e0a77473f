// Package types defines the core types and interfaces shared across pipegen:
// the FS abstraction, discovered services and the per-service outcomes of a
// generation run.
package types
